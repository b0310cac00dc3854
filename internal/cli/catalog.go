package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lapidary/internal/catalog"
	"github.com/ppiankov/lapidary/internal/engine"
	"github.com/ppiankov/lapidary/internal/model"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the reference catalog",
	Long: `Inspect the mineral reference catalog lapidary identifies against.

The catalog is read-only input: lapidary never modifies it.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show catalog statistics",
	Long:  `Display record count and per-property data coverage for the configured catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		minerals, source, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Catalog: %s\n", source)
		fmt.Printf("Records: %d\n\n", len(minerals))
		if len(minerals) == 0 {
			return nil
		}

		var ri, sg, biref, disp, hardness, system, optical int
		for _, m := range minerals {
			if m.RIMin != nil || m.RIMax != nil {
				ri++
			}
			if m.SGMin != nil || m.SGMax != nil {
				sg++
			}
			if m.Birefringence != nil {
				biref++
			}
			if m.Dispersion != nil {
				disp++
			}
			if m.Hardness != "" {
				hardness++
			}
			if m.System != "" {
				system++
			}
			if m.OpticalCharacter != "" {
				optical++
			}
		}

		total := len(minerals)
		coverage := func(label string, n int) {
			fmt.Printf("  %-20s %4d/%d (%3.0f%%)\n", label, n, total, 100*float64(n)/float64(total))
		}
		fmt.Println("Property coverage:")
		coverage("refractive index", ri)
		coverage("specific gravity", sg)
		coverage("birefringence", biref)
		coverage("dispersion", disp)
		coverage("hardness", hardness)
		coverage("crystal system", system)
		coverage("optical character", optical)

		return nil
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check catalog records for unusable descriptors",
	Long: `Check reports records whose free-text fields the engine cannot use:
hardness descriptors with no numeric pattern and crystal systems outside
the optic-character lookup. Such records still rank, but the affected
properties always count against them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		minerals, source, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Checking %d records from %s\n\n", len(minerals), source)

		var issues int
		for _, m := range minerals {
			if m.Hardness != "" {
				if _, _, ok := engine.ParseHardness(m.Hardness); !ok {
					issues++
					fmt.Printf("  %s: unparseable hardness descriptor %q\n", m.Name, m.Hardness)
				}
			}
			if m.System != "" {
				if _, ok := engine.OpticCharacterForSystem(m.System); !ok {
					issues++
					fmt.Printf("  %s: crystal system %q maps to no optic character\n", m.Name, m.System)
				}
			}
		}

		if issues == 0 {
			fmt.Println("✓ No issues found")
		} else {
			fmt.Printf("\n%d issue(s) found\n", issues)
		}
		return nil
	},
}

// loadCatalog opens and loads the configured catalog without caching.
func loadCatalog(cmd *cobra.Command) ([]model.Mineral, string, error) {
	path := catalogPath
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	if path == "" {
		return nil, "", fmt.Errorf("no catalog configured (use --catalog or set catalog.path in ~/.lapidary/config.yaml)")
	}

	store, err := catalog.Open(path)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	minerals, err := store.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	return minerals, store.Source(), nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogCheckCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog path (.db, .sqlite, .yaml, .json)")
}

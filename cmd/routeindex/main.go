package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kass/go-route-index/internal/routestore"
	"github.com/kass/go-route-index/pkg/routeindex"
)

var (
	configPath string
	snapshot   string

	queryLat float64
	queryLng float64
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))

func colorsEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

var rootCmd = &cobra.Command{
	Use:   "routeindex",
	Short: "Nearest-point-on-route spatial index",
	Long:  `Build a two-level R-tree index over a polyline route and answer nearest-point queries against it.`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an index from a route and report its metadata",
	RunE:  runBuild,
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find the nearest point on a route to a target coordinate",
	RunE:  runQuery,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "routeindex.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&snapshot, "snapshot", "s", "", "write/read a gob route snapshot at this path instead of the configured source")

	queryCmd.Flags().Float64Var(&queryLat, "lat", 0, "target latitude")
	queryCmd.Flags().Float64Var(&queryLng, "lng", 0, "target longitude")

	rootCmd.AddCommand(buildCmd, queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// loadRoute resolves a route either from a gob snapshot, a JSON route file,
// or PostGIS, in that order of precedence.
func loadRoute(ctx context.Context, cfg *config, log *zap.SugaredLogger) (routeindex.Route, error) {
	if snapshot != "" {
		if _, err := os.Stat(snapshot); err == nil {
			_, route, err := routestore.LoadSnapshotRoute(snapshot)
			if err != nil {
				return nil, err
			}
			log.Infow("loaded route from snapshot", "path", snapshot, "segments", len(route))
			return route, nil
		}
	}

	if cfg.Route.File != "" {
		return loadRouteFile(cfg.Route.File)
	}

	if cfg.Postgis.Host != "" {
		store, err := routestore.Open(cfg.Postgis.Host, cfg.Postgis.Port, cfg.Postgis.User, cfg.Postgis.Password, cfg.Postgis.Database, log)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		vertices, err := store.LoadRoute(ctx, "default")
		if err != nil {
			return nil, err
		}
		return routestore.ToRoute(vertices), nil
	}

	return nil, fmt.Errorf("no route source configured: set route.file or postgis.host in %s", configPath)
}

func indexOptionsFromConfig(cfg *config) []routeindex.IndexOption {
	return []routeindex.IndexOption{
		routeindex.WithClusterLevel(cfg.Index.UseClusterLevel),
		routeindex.WithClusterSize(cfg.Index.ClusterSize),
		routeindex.WithBufferSize(cfg.Index.BufferSize),
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	route, err := loadRoute(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	idx, err := routeindex.New(route, indexOptionsFromConfig(cfg)...)
	if err != nil {
		return err
	}

	if snapshot != "" {
		if err := routestore.SaveSnapshot(snapshot, "", route); err != nil {
			return err
		}
	}

	md := idx.Metadata()
	printLabeled("segments", fmt.Sprintf("%d", md.TotalSegments))
	printLabeled("sub-segments", fmt.Sprintf("%d", md.TotalSubSegments))
	printLabeled("total length", fmt.Sprintf("%.1fm", md.TotalLengthMeters))
	fmt.Println(successStyle.Render("index built"))
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	route, err := loadRoute(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	idx, err := routeindex.New(route, indexOptionsFromConfig(cfg)...)
	if err != nil {
		return err
	}

	target := routeindex.LatLng{Lat: queryLat, Lng: queryLng}
	result := idx.FindNearestPoint(target)

	printLabeled("point", fmt.Sprintf("(%.6f, %.6f)", result.Point.Lat, result.Point.Lng))
	printLabeled("distance", fmt.Sprintf("%.2fm", result.DistanceMeters))
	printLabeled("segment", fmt.Sprintf("%d/%d", result.SegmentIndex, result.SubSegmentIndex))
	return nil
}

func printLabeled(label, value string) {
	if colorsEnabled() {
		fmt.Printf("%s %s\n", labelStyle.Render(label+":"), value)
		return
	}
	fmt.Printf("%s: %s\n", label, value)
}

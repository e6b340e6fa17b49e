package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-forecast/internal/app"
	"github.com/riskibarqy/match-forecast/internal/config"
	"github.com/riskibarqy/match-forecast/internal/domain/feature"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/usecase"
)

var errMissingTeams = errors.New("both -home and -away must be positive team ids")

type output struct {
	HomeTeam string             `json:"homeTeam"`
	AwayTeam string             `json:"awayTeam"`
	Names    []string           `json:"names"`
	Vector   []float64          `json:"vector"`
	Named    map[string]float64 `json:"named"`
}

type featureSource interface {
	Features(ctx context.Context, homeID, awayID standing.TeamID) (usecase.MatchFeatures, error)
}

func main() {
	homeID, awayID, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, errMissingTeams) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// logs go to stderr so stdout carries only the vector
	logger := logging.New(cfg.LogLevel, logging.FormatConsole)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services := app.NewServices(cfg, nil, logger)
	if err := writeFeatures(ctx, os.Stdout, services.Predictions, homeID, awayID); err != nil {
		logger.Error("compute features failed", "home_team_id", homeID, "away_team_id", awayID, "error", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (standing.TeamID, standing.TeamID, error) {
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(stderr)
	homeID := fs.Int64("home", 0, "home team id (football-data.org)")
	awayID := fs.Int64("away", 0, "away team id (football-data.org)")
	if err := fs.Parse(args); err != nil {
		return 0, 0, err
	}
	if *homeID <= 0 || *awayID <= 0 {
		fs.Usage()
		return 0, 0, errMissingTeams
	}
	return standing.TeamID(*homeID), standing.TeamID(*awayID), nil
}

func writeFeatures(ctx context.Context, w io.Writer, source featureSource, homeID, awayID standing.TeamID) error {
	features, err := source.Features(ctx, homeID, awayID)
	if err != nil {
		return err
	}

	encoded, err := sonic.ConfigDefault.MarshalIndent(output{
		HomeTeam: features.HomeName,
		AwayTeam: features.AwayName,
		Names:    feature.Names(),
		Vector:   features.Vector.Slice(),
		Named:    features.Vector.Named(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

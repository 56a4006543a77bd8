// Command astrombr computes the minimum-area bounding rectangle of a few
// sample point sets, logs the results and optionally mails a report.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Asteroidea-tn/astrombr/pkg/astrocaliper"
	"github.com/Asteroidea-tn/astrombr/pkg/astrocrypt"
	"github.com/Asteroidea-tn/astrombr/pkg/astroenv"
	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
	"github.com/Asteroidea-tn/astrombr/pkg/astrolog"
	"github.com/Asteroidea-tn/astrombr/pkg/astromail"
)

type config struct {
	Key  string `env:"ASTRO_KEY,"` // AES key for fields tagged encrypt:"true"
	Log  astrolog.ConfigLogger
	Mail astromail.Config
}

// loadConfig reads the environment and, when ASTRO_KEY is set, opens the
// encrypted fields.
func loadConfig(files ...string) (config, error) {
	var cfg config
	if err := astroenv.LoadEnvVarible(&cfg, files...); err != nil {
		return cfg, err
	}
	if cfg.Key == "" {
		return cfg, nil
	}

	svc, err := astrocrypt.NewService([]byte(cfg.Key))
	if err != nil {
		return cfg, fmt.Errorf("ASTRO_KEY: %w", err)
	}
	if err := svc.DecryptStruct(&cfg.Mail); err != nil {
		return cfg, fmt.Errorf("decrypt mail config: %w", err)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := astrolog.InitLogger(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to init logger")
	}

	report := run(scenarios, time.Now())

	if err := astromail.NewMailer(cfg.Mail).Send(report); err != nil {
		log.Error().Err(err).Msg("failed to mail report")
		os.Exit(1)
	}
	if report.Failed() > 0 {
		os.Exit(1)
	}
}

func run(list []scenario, now time.Time) astromail.Report {
	report := astromail.Report{
		Title:     "Minimum bounding rectangles",
		Generated: now,
	}

	for _, sc := range list {
		entry := astromail.Entry{
			Name:   sc.name,
			Points: sc.points,
			Bounds: astrogeom.Bounds(sc.points),
		}
		entry.Rect, entry.Err = astrocaliper.MinBoundingRect(sc.points)
		report.Entries = append(report.Entries, entry)

		if entry.Err != nil {
			log.Error().Err(entry.Err).Str("scenario", sc.name).Msg("no rectangle")
			continue
		}
		log.Info().
			Str("scenario", sc.name).
			Float64("area", entry.Rect.Area).
			Float64("width", entry.Rect.Width).
			Float64("height", entry.Rect.Height).
			Float64("axis_aligned_area", entry.Bounds.Area()).
			Stringer("stop", entry.Rect.Stop).
			Bool("complete", entry.Rect.Complete()).
			Msg("minimum bounding rectangle")
	}
	return report
}

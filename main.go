package main

import (
	"context"
	"encoding/csv"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/grexie/oversample/pkg/config"
	"github.com/grexie/oversample/pkg/dataset"
	"github.com/grexie/oversample/pkg/db"
	"github.com/grexie/oversample/pkg/oversample"
	"github.com/grexie/oversample/pkg/report"
	"github.com/grexie/oversample/pkg/store"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func loadRows(ctx context.Context, settings config.Settings, mdb func() (*mongo.Database, error)) ([]dataset.Row, error) {
	switch source := settings.Source; {
	case source == config.SourceSynthetic:
		return dataset.Synthetic(settings.SyntheticSize, oversample.NewRand(settings.Engine.Seed)), nil
	case source == config.SourceMongo:
		d, err := mdb()
		if err != nil {
			return nil, err
		}
		return db.LoadRows(ctx, d, settings.Collection)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		rows, _, err := dataset.FetchCSV(ctx, source)
		return rows, err
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, _, err := dataset.ReadCSV(f)
		return rows, err
	}
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		os.Setenv("ENV", "development")
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	settings, err := config.Load(os.Getenv("OVERSAMPLE_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	settings.Write(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var mongoDB *mongo.Database
	connect := func() (*mongo.Database, error) {
		if mongoDB != nil {
			return mongoDB, nil
		}
		d, err := db.ConnectMongo(ctx)
		if err != nil {
			return nil, err
		}
		mongoDB = d
		return d, nil
	}

	rows, err := loadRows(ctx, settings, connect)
	if err != nil {
		log.Fatalf("error loading rows from %s: %v", settings.Source, err)
	}

	ds, err := dataset.New(rows, settings.Targets)
	if err != nil {
		log.Fatalf("error building dataset: %v", err)
	}

	opts := []oversample.Option{}
	var pw progress.Writer
	if settings.Progress {
		pw = progress.NewWriter()
		pw.SetMessageLength(40)
		pw.SetNumTrackersExpected(1)
		pw.SetStyle(progress.StyleDefault)
		pw.SetTrackerLength(15)
		pw.SetTrackerPosition(progress.PositionRight)
		pw.SetUpdateFrequency(time.Millisecond * 100)
		pw.Style().Colors = progress.StyleColorsExample
		pw.Style().Options.PercentFormat = "%2.0f%%"
		go pw.Render()
		opts = append(opts, oversample.WithProgress(pw))
	}

	engine, err := oversample.New(settings.Engine, opts...)
	if err != nil {
		log.Fatalf("error configuring oversampler: %v", err)
	}

	result, err := engine.FitDataset(ctx, ds)

	if pw != nil {
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(100 * time.Millisecond)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("error oversampling: %v", err)
	} else if err != nil {
		log.Printf("interrupted after %d accepted iterations", result.Trace.Accepted())
	}

	if settings.Engine.Report {
		report.Write(os.Stdout, result.Trace)
	}

	if settings.Output != "" {
		if f, err := os.Create(settings.Output); err != nil {
			log.Fatalf("error creating %s: %v", settings.Output, err)
		} else {
			if err := dataset.WriteCSV(f, ds.Columns(), result.Rows); err != nil {
				log.Fatalf("error writing %s: %v", settings.Output, err)
			}
			f.Close()
			log.Printf("wrote %d rows to %s", len(result.Rows), settings.Output)
		}
	}

	if settings.TraceCSV != "" {
		if f, err := os.OpenFile(settings.TraceCSV, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644); err != nil {
			log.Fatalf("error creating %s: %v", settings.TraceCSV, err)
		} else {
			if err := report.WriteCSV(csv.NewWriter(f), result.Trace); err != nil {
				log.Fatalf("error writing csv: %v", err)
			}
			f.Close()
		}
	}

	if settings.Cache != "" {
		if s, err := store.Open(settings.Cache); err != nil {
			log.Fatalf("error opening run cache: %v", err)
		} else {
			if err := s.Save(result.Trace); err != nil {
				log.Fatalf("error caching run %s: %v", result.Trace.RunID, err)
			}
			s.Close()
			log.Printf("cached run %s in %s", result.Trace.RunID, settings.Cache)
		}
	}

	if settings.SaveRuns {
		if d, err := connect(); err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		} else if err := db.SaveRun(context.Background(), d, result.Trace); err != nil {
			log.Fatalf("error saving run %s: %v", result.Trace.RunID, err)
		}
	}
}

package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grexie/oversample/pkg/dataset"
	"github.com/grexie/oversample/pkg/oversample"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const (
	SourceSynthetic = "synthetic"
	SourceMongo     = "mongodb"
)

type Settings struct {
	Engine oversample.Config `yaml:"engine"`

	Targets []string `yaml:"targets"`
	// Source is a CSV path, an http(s) URL, "mongodb" or "synthetic".
	Source        string `yaml:"source"`
	Collection    string `yaml:"collection"`
	SyntheticSize int    `yaml:"synthetic_size"`

	Output   string `yaml:"output"`
	TraceCSV string `yaml:"trace_csv"`
	Cache    string `yaml:"cache"`
	Progress bool   `yaml:"progress"`
	SaveRuns bool   `yaml:"save_runs"`
}

func Defaults() Settings {
	return Settings{
		Engine:        oversample.DefaultConfig(),
		Targets:       append([]string(nil), dataset.SyntheticTargets...),
		Source:        SourceSynthetic,
		Collection:    "rows",
		SyntheticSize: 1,
		Progress:      true,
	}
}

// Load starts from Defaults, applies the YAML file at path if path is not
// empty, then the OVERSAMPLE_* environment.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := s.ApplyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) ApplyEnv() error {
	for _, err := range []error{
		envInt("OVERSAMPLE_MAX_ITERATIONS", &s.Engine.MaxIterations),
		envInt("OVERSAMPLE_MAX_TRIES", &s.Engine.MaxTries),
		envUint64("OVERSAMPLE_SEED", &s.Engine.Seed),
		envBool("OVERSAMPLE_DETAILS", &s.Engine.Details),
		envBool("OVERSAMPLE_REPORT", &s.Engine.Report),
		envList("OVERSAMPLE_TARGETS", &s.Targets),
		envString("OVERSAMPLE_SOURCE", &s.Source),
		envString("OVERSAMPLE_COLLECTION", &s.Collection),
		envInt("OVERSAMPLE_SYNTHETIC_SIZE", &s.SyntheticSize),
		envString("OVERSAMPLE_OUTPUT", &s.Output),
		envString("OVERSAMPLE_TRACE_CSV", &s.TraceCSV),
		envString("OVERSAMPLE_CACHE", &s.Cache),
		envBool("OVERSAMPLE_PROGRESS", &s.Progress),
		envBool("OVERSAMPLE_SAVE_RUNS", &s.SaveRuns),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func envInt(name string, value *int) error {
	if v, ok := os.LookupEnv(name); ok {
		if v, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("failed to parse env.%s: %w", name, err)
		} else {
			*value = int(v)
		}
	}
	return nil
}

func envUint64(name string, value *uint64) error {
	if v, ok := os.LookupEnv(name); ok {
		if v, err := strconv.ParseUint(v, 10, 64); err != nil {
			return fmt.Errorf("failed to parse env.%s: %w", name, err)
		} else {
			*value = v
		}
	}
	return nil
}

func envBool(name string, value *bool) error {
	if v, ok := os.LookupEnv(name); ok {
		if v, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("failed to parse env.%s: %w", name, err)
		} else {
			*value = v
		}
	}
	return nil
}

func envString(name string, value *string) error {
	if v, ok := os.LookupEnv(name); ok {
		*value = v
	}
	return nil
}

func envList(name string, value *[]string) error {
	if v, ok := os.LookupEnv(name); ok {
		out := []string{}
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*value = out
	}
	return nil
}

func (s Settings) Write(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Oversampling Config")
	t.AppendRows([]table.Row{
		{"OVERSAMPLE_MAX_ITERATIONS", fmt.Sprintf("%d", s.Engine.MaxIterations)},
		{"OVERSAMPLE_MAX_TRIES", fmt.Sprintf("%d", s.Engine.MaxTries)},
		{"OVERSAMPLE_SEED", fmt.Sprintf("%d", s.Engine.Seed)},
		{"OVERSAMPLE_DETAILS", fmt.Sprintf("%t", s.Engine.Details)},
		{"OVERSAMPLE_REPORT", fmt.Sprintf("%t", s.Engine.Report)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"OVERSAMPLE_TARGETS", strings.Join(s.Targets, ",")},
		{"OVERSAMPLE_SOURCE", s.Source},
		{"OVERSAMPLE_COLLECTION", s.Collection},
		{"OVERSAMPLE_SYNTHETIC_SIZE", fmt.Sprintf("%d", s.SyntheticSize)},
		{"OVERSAMPLE_OUTPUT", s.Output},
		{"OVERSAMPLE_TRACE_CSV", s.TraceCSV},
		{"OVERSAMPLE_CACHE", s.Cache},
		{"OVERSAMPLE_SAVE_RUNS", fmt.Sprintf("%t", s.SaveRuns)},
	})
	t.Render()
}

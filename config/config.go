package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

const EnvPrefix = "PRACSI"

type Transversal struct {
	Task                 string `yaml:"task" mapstructure:"task"`
	InteractionalSegment string `yaml:"interactional_segment" mapstructure:"interactional_segment"`
	MicroTask            string `yaml:"micro_task" mapstructure:"micro_task"`
	Sequence             string `yaml:"sequence" mapstructure:"sequence"`
	Transaction          string `yaml:"transaction" mapstructure:"transaction"`
}
type Moves struct {
	NonVerbal string `yaml:"non_verbal" mapstructure:"non_verbal"`
	Level1    string `yaml:"level1" mapstructure:"level1"`
	Level2    string `yaml:"level2" mapstructure:"level2"`
	Level3    string `yaml:"level3" mapstructure:"level3"`
}
type Layout struct {
	SpeakerCategory   string      `yaml:"speaker_category" mapstructure:"speaker_category"`
	NoteTier          string      `yaml:"note_tier" mapstructure:"note_tier"`
	NoteParticipant   string      `yaml:"note_participant" mapstructure:"note_participant"`
	ForwardReferences bool        `yaml:"forward_references" mapstructure:"forward_references"`
	Transversal       Transversal `yaml:"transversal" mapstructure:"transversal"`
	Moves             Moves       `yaml:"moves" mapstructure:"moves"`
}
type Output struct {
	Format  string `yaml:"format" mapstructure:"format"`
	Summary bool   `yaml:"summary" mapstructure:"summary"`
}
type Server struct {
	Addr        string `yaml:"addr" mapstructure:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}
type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Layout Layout `yaml:"layout" mapstructure:"layout"`
	Output Output `yaml:"output" mapstructure:"output"`
	Server Server `yaml:"server" mapstructure:"server"`
	Paths  struct {
		Uploads string `yaml:"uploads" mapstructure:"uploads"`
		Outputs string `yaml:"outputs" mapstructure:"outputs"`
	} `yaml:"paths" mapstructure:"paths"`
}

func setDefaults(v *viper.Viper) {
	l := transcript.DefaultLayout()
	defaults := map[string]any{
		"pipeline.name":       "pracsi",
		"pipeline.version":    "0.1.0",
		"pipeline.log_level":  "info",
		"pipeline.log_format": "text",

		"layout.speaker_category":   l.SpeakerCategory,
		"layout.note_tier":          l.NoteTier,
		"layout.note_participant":   l.NoteParticipant,
		"layout.forward_references": l.ForwardReferences,

		"layout.transversal.task":                  l.Task,
		"layout.transversal.interactional_segment": l.InteractionalSegment,
		"layout.transversal.micro_task":            l.MicroTask,
		"layout.transversal.sequence":              l.Sequence,
		"layout.transversal.transaction":           l.Transaction,

		"layout.moves.non_verbal": l.NonVerbal,
		"layout.moves.level1":     l.MoveLevel1,
		"layout.moves.level2":     l.MoveLevel2,
		"layout.moves.level3":     l.MoveLevel3,

		"output.format":  "csv",
		"output.summary": false,

		"server.addr":          ":5000",
		"server.max_upload_mb": 64,

		"paths.uploads": "uploads",
		"paths.outputs": "outputs",
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// PRACSI_* environment variables, in increasing precedence. With an empty
// path the file is looked up as config/<CONFIG_ENV>/config.yaml and is
// optional; an explicit path must exist. A .env file in the working
// directory is loaded first when present.
func Load(path string) (*Root, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("config", env))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Dump writes cfg as YAML.
func Dump(w io.Writer, cfg *Root) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// TranscriptLayout maps the configured tier names onto the conversion layout.
func (r *Root) TranscriptLayout() transcript.Layout {
	return transcript.Layout{
		SpeakerCategory:      r.Layout.SpeakerCategory,
		NoteTier:             r.Layout.NoteTier,
		NoteParticipant:      r.Layout.NoteParticipant,
		Task:                 r.Layout.Transversal.Task,
		InteractionalSegment: r.Layout.Transversal.InteractionalSegment,
		MicroTask:            r.Layout.Transversal.MicroTask,
		Sequence:             r.Layout.Transversal.Sequence,
		Transaction:          r.Layout.Transversal.Transaction,
		NonVerbal:            r.Layout.Moves.NonVerbal,
		MoveLevel1:           r.Layout.Moves.Level1,
		MoveLevel2:           r.Layout.Moves.Level2,
		MoveLevel3:           r.Layout.Moves.Level3,
		ForwardReferences:    r.Layout.ForwardReferences,
	}
}

// MaxUploadBytes is the configured upload limit in bytes.
func (r *Root) MaxUploadBytes() int64 {
	return int64(r.Server.MaxUploadMB) << 20
}

// Package config loads and persists the panel settings
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/lumipallolabs/imagedive/internal/pathutil"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the workspace and ~/.imagedive
const FileName = "imagedive"

// Settings holds everything the user can configure
type Settings struct {
	IncludeFolders        []string        `mapstructure:"includeFolders" json:"includeFolders"`
	ExcludeFolders        []string        `mapstructure:"excludeFolders" json:"excludeFolders"`
	IncludeProjectFolders map[string]bool `mapstructure:"-" json:"includeProjectFolders"`
	ImageBackground       string          `mapstructure:"imageBackground" json:"imageBackground"`
	ImageSize             int             `mapstructure:"imageSize" json:"imageSize"`
	LazyLoading           bool            `mapstructure:"lazyLoading" json:"lazyLoading"`
	PathDelimiter         string          `mapstructure:"pathDelimiter" json:"pathDelimiter"`
	SortGroups            bool            `mapstructure:"sortGroups" json:"sortGroups"`
	ParallelScan          bool            `mapstructure:"parallelScan" json:"parallelScan"`
}

// Defaults are the settings of a fresh install
var Defaults = Settings{
	IncludeFolders:        []string{},
	ExcludeFolders:        []string{"node_modules"},
	IncludeProjectFolders: map[string]bool{},
	ImageBackground:       "transparent",
	ImageSize:             100,
	LazyLoading:           true,
	PathDelimiter:         pathutil.DefaultDelimiter,
	SortGroups:            true,
	ParallelScan:          false,
}

// Clone returns a deep copy
func (s Settings) Clone() Settings {
	out := s
	out.IncludeFolders = slices.Clone(s.IncludeFolders)
	out.ExcludeFolders = slices.Clone(s.ExcludeFolders)
	out.IncludeProjectFolders = maps.Clone(s.IncludeProjectFolders)
	if out.IncludeProjectFolders == nil {
		out.IncludeProjectFolders = map[string]bool{}
	}
	return out
}

// Normalize fills zero values with defaults and cleans list entries
func (s Settings) Normalize() Settings {
	s = s.Clone()
	s.IncludeFolders = cleanList(s.IncludeFolders)
	s.ExcludeFolders = cleanList(s.ExcludeFolders)
	if s.ImageSize <= 0 {
		s.ImageSize = Defaults.ImageSize
	}
	if s.ImageBackground == "" {
		s.ImageBackground = Defaults.ImageBackground
	}
	if s.PathDelimiter == "" {
		s.PathDelimiter = Defaults.PathDelimiter
	}
	return s
}

// Filters returns the walk filters
func (s Settings) Filters() scanner.Filters {
	return scanner.Filters{
		Include: slices.Clone(s.IncludeFolders),
		Exclude: slices.Clone(s.ExcludeFolders),
	}
}

// ProjectEnabled reports whether root takes part in scans. Unknown roots do.
func (s Settings) ProjectEnabled(root string) bool {
	if enabled, ok := s.IncludeProjectFolders[root]; ok {
		return enabled
	}
	return true
}

// EnabledRoots returns the enabled roots in workspace order
func (s Settings) EnabledRoots(roots []string) []string {
	var out []string
	for _, r := range roots {
		if s.ProjectEnabled(r) {
			out = append(out, r)
		}
	}
	return out
}

// ReconcileProjectFolders keeps one entry per workspace root, enabling new
// roots and forgetting roots that are gone. Reports whether anything changed.
func (s *Settings) ReconcileProjectFolders(roots []string) bool {
	next := make(map[string]bool, len(roots))
	for _, r := range roots {
		next[r] = s.ProjectEnabled(r)
	}
	changed := !maps.Equal(next, s.IncludeProjectFolders)
	s.IncludeProjectFolders = next
	return changed
}

// FilterChanged reports whether going from old to next needs a rescan
func FilterChanged(old, next Settings) bool {
	return !slices.Equal(old.IncludeFolders, next.IncludeFolders) ||
		!slices.Equal(old.ExcludeFolders, next.ExcludeFolders) ||
		!maps.Equal(old.IncludeProjectFolders, next.IncludeProjectFolders) ||
		old.ParallelScan != next.ParallelScan
}

// setDefaults registers every default with v
func setDefaults(v *viper.Viper) {
	v.SetDefault("includeFolders", Defaults.IncludeFolders)
	v.SetDefault("excludeFolders", Defaults.ExcludeFolders)
	v.SetDefault("imageBackground", Defaults.ImageBackground)
	v.SetDefault("imageSize", Defaults.ImageSize)
	v.SetDefault("lazyLoading", Defaults.LazyLoading)
	v.SetDefault("pathDelimiter", Defaults.PathDelimiter)
	v.SetDefault("sortGroups", Defaults.SortGroups)
	v.SetDefault("parallelScan", Defaults.ParallelScan)
}

// bindEnv binds the readable environment names on top of AutomaticEnv
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("includeFolders", "IMAGEDIVE_INCLUDE")
	_ = v.BindEnv("excludeFolders", "IMAGEDIVE_EXCLUDE")
	_ = v.BindEnv("imageBackground", "IMAGEDIVE_BACKGROUND")
	_ = v.BindEnv("imageSize", "IMAGEDIVE_IMAGE_SIZE")
	_ = v.BindEnv("pathDelimiter", "IMAGEDIVE_DELIMITER")
	_ = v.BindEnv("sortGroups", "IMAGEDIVE_SORT_GROUPS")
	_ = v.BindEnv("parallelScan", "IMAGEDIVE_PARALLEL")
}

// InitFlags adds the persistent flags that override settings
func InitFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to a configuration file (YAML or JSON)")
	flags.StringSlice("include", nil, "only scan these folders below each root")
	flags.StringSlice("exclude", nil, "skip folders whose path ends with one of these")
	flags.String("delimiter", "", "separator used when displaying paths")
	flags.Bool("parallel", false, "scan with parallel workers")
}

// bindFlags binds flags registered by InitFlags, when present
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	bind := func(key, flag string) {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
	bind("includeFolders", "include")
	bind("excludeFolders", "exclude")
	bind("pathDelimiter", "delimiter")
	bind("parallelScan", "parallel")
}

// Load reads settings from defaults, the config file, the environment and
// cmd's flags, in increasing priority. It returns the settings and the path
// they should be saved to.
func Load(cmd *cobra.Command, workspace string) (Settings, string, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("IMAGEDIVE")
	v.AutomaticEnv()
	bindEnv(v)

	cfgFile := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}

	savePath := cfgFile
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, "", fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if workspace != "" {
			v.AddConfigPath(workspace)
		}
		v.AddConfigPath(DefaultDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, "", fmt.Errorf("read config: %w", err)
			}
		}
		savePath = v.ConfigFileUsed()
		if savePath == "" {
			savePath = filepath.Join(DefaultDir(), FileName+".yaml")
		}
	}

	bindFlags(v, cmd)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, "", fmt.Errorf("decode config: %w", err)
	}

	// Lists may be stored as YAML sequences or as ';'-joined strings
	s.IncludeFolders = toList(v.Get("includeFolders"))
	s.ExcludeFolders = toList(v.Get("excludeFolders"))
	s.IncludeProjectFolders = toProjectFolders(v.Get("projectFolders"))

	return s.Normalize(), savePath, nil
}

// DefaultDir is the per-user directory holding the global config file
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".imagedive"
	}
	return filepath.Join(home, ".imagedive")
}

func toList(value any) []string {
	if value == nil {
		return []string{}
	}
	if s, ok := value.(string); ok {
		return cleanList(strings.Split(s, ";"))
	}
	var out []string
	for _, item := range cast.ToStringSlice(value) {
		out = append(out, strings.Split(item, ";")...)
	}
	return cleanList(out)
}

func cleanList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ProjectFolder is the persisted form of one includeProjectFolders entry.
// Paths are kept as list values since viper folds map keys to lower case.
type ProjectFolder struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

func toProjectFolders(value any) map[string]bool {
	out := map[string]bool{}
	for _, item := range cast.ToSlice(value) {
		entry := cast.ToStringMap(item)
		path := cast.ToString(entry["path"])
		if path == "" {
			continue
		}
		out[path] = cast.ToBool(entry["enabled"])
	}
	return out
}

func fromProjectFolders(m map[string]bool) []ProjectFolder {
	out := make([]ProjectFolder, 0, len(m))
	for path, enabled := range m {
		out = append(out, ProjectFolder{Path: path, Enabled: enabled})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

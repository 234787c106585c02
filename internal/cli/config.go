package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/panel"
)

// Config is the TOML file accepted by --config.
//
//	[enclosure]
//	width = 100
//	height = 50
//	depth = 80
//	perspex_thickness = 3
//	wood_thickness = 6
//
//	[output]
//	dir = "out"
//	grouping = "material"
//	formats = ["svg", "xlsx"]
type Config struct {
	Enclosure panel.Enclosure `toml:"enclosure"`
	Output    OutputConfig    `toml:"output"`
}

// OutputConfig selects where and how drawings are written.
type OutputConfig struct {
	Dir      string   `toml:"dir"`
	Grouping string   `toml:"grouping"`
	Formats  []string `toml:"formats"`
}

// defaultConfig holds the values used for keys a config file leaves out.
func defaultConfig() Config {
	return Config{
		Enclosure: panel.NewEnclosure(0, 0, 0),
		Output:    OutputConfig{Dir: defaultOutputDir},
	}
}

// loadConfig reads and decodes a config file. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return parseConfig(string(data))
}

func parseConfig(data string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, ferrors.New(ferrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// enclosureFlags are the flags shared by every command that takes an
// enclosure.
type enclosureFlags struct {
	configPath string
	width      int
	height     int
	depth      int
	perspex    int
	wood       int
	grouping   string
}

func (f *enclosureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().IntVarP(&f.width, "width", "w", 0, "inner width in mm")
	cmd.Flags().IntVar(&f.height, "height", 0, "inner height in mm")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 0, "inner depth in mm")
	cmd.Flags().IntVar(&f.perspex, "perspex-thickness", panel.DefaultThickness, "perspex sheet thickness in mm")
	cmd.Flags().IntVar(&f.wood, "wood-thickness", panel.DefaultThickness, "wood sheet thickness in mm")
	cmd.Flags().StringVarP(&f.grouping, "grouping", "g", "", "panel grouping: material (default), combined")
}

// wins reports whether the flag called name takes precedence over the config
// file. Without a config file every flag wins, defaults included.
func (f *enclosureFlags) wins(changed func(string) bool, name string) bool {
	return f.configPath == "" || changed(name)
}

// resolve loads the config file, if any, and applies the flags on top.
func (f *enclosureFlags) resolve(changed func(string) bool) (Config, error) {
	cfg := defaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = loadConfig(f.configPath); err != nil {
			return Config{}, err
		}
	}

	ints := []struct {
		name string
		dst  *int
		v    int
	}{
		{"width", &cfg.Enclosure.Width, f.width},
		{"height", &cfg.Enclosure.Height, f.height},
		{"depth", &cfg.Enclosure.Depth, f.depth},
		{"perspex-thickness", &cfg.Enclosure.PerspexThickness, f.perspex},
		{"wood-thickness", &cfg.Enclosure.WoodThickness, f.wood},
	}
	for _, it := range ints {
		if f.wins(changed, it.name) {
			*it.dst = it.v
		}
	}
	if f.wins(changed, "grouping") {
		cfg.Output.Grouping = f.grouping
	}
	return cfg, nil
}

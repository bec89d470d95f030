package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ukaji3/sheetjson/pkg/sheetjson"
)

// configName is the config file looked up in the working directory.
const configName = "sheetjson"

// envPrefix prefixes environment overrides, e.g. SHEETJSON_SHEET.
const envPrefix = "SHEETJSON"

// SheetJob converts one more sheet of the same workbook.
type SheetJob struct {
	Sheet  string `mapstructure:"sheet" yaml:"sheet"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Config is the effective configuration after merging flags, environment
// and config file.
type Config struct {
	Input         string     `mapstructure:"input" yaml:"input"`
	Sheet         string     `mapstructure:"sheet" yaml:"sheet"`
	Output        string     `mapstructure:"output" yaml:"output"`
	DateFormat    string     `mapstructure:"date_format" yaml:"date_format"`
	Pretty        bool       `mapstructure:"pretty" yaml:"pretty"`
	Range         string     `mapstructure:"range" yaml:"range,omitempty"`
	NAValues      []string   `mapstructure:"na_values" yaml:"na_values,omitempty"`
	KeepDefaultNA bool       `mapstructure:"keep_default_na" yaml:"keep_default_na"`
	ExtraSheets   []SheetJob `mapstructure:"extra_sheets" yaml:"extra_sheets,omitempty"`
}

// flagKeys maps config keys to the persistent flags that set them.
var flagKeys = map[string]string{
	"input":           "input",
	"sheet":           "sheet",
	"output":          "output",
	"date_format":     "date-format",
	"pretty":          "pretty",
	"range":           "range",
	"na_values":       "na-value",
	"keep_default_na": "keep-default-na",
}

// registerFlags defines the conversion flags on fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", sheetjson.DefaultInputPath, "Input workbook path")
	fs.StringP("sheet", "s", sheetjson.DefaultSheetName, "Sheet to convert (exact name)")
	fs.StringP("output", "o", sheetjson.DefaultOutputPath, "Output JSON file path")
	fs.String("date-format", string(sheetjson.DateEpoch), "Date encoding: epoch (milliseconds) or iso")
	fs.Bool("pretty", false, "Pretty-print JSON output")
	fs.String("range", "", "Cell range to read, e.g. A1:P200 or A:P (default: whole sheet)")
	fs.StringSlice("na-value", nil, "Extra cell text read as null (repeatable)")
	fs.Bool("keep-default-na", true, "Read the default NA markers (NA, N/A, #N/A, ...) as null")
}

// loadConfig wires flags, environment and the config file into v.
// A missing default config file is ignored; a missing explicit one is not.
func loadConfig(v *viper.Viper, fs *pflag.FlagSet, cfgFile string) error {
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	v.SetDefault("extra_sheets", []SheetJob{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// decodeConfig returns the merged configuration held by v.
func decodeConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// jobs returns the conversions to run: the primary sheet first, then the
// extra sheets in order.
func (c *Config) jobs() []SheetJob {
	jobs := []SheetJob{{Sheet: c.Sheet, Output: c.Output}}
	return append(jobs, c.ExtraSheets...)
}

// options builds conversion options for one job.
func (c *Config) options(job SheetJob) (sheetjson.Options, error) {
	format, err := sheetjson.ParseDateFormat(c.DateFormat)
	if err != nil {
		return sheetjson.Options{}, err
	}
	return sheetjson.Options{
		InputPath:     c.Input,
		SheetName:     job.Sheet,
		OutputPath:    job.Output,
		DateFormat:    format,
		Pretty:        c.Pretty,
		Range:         c.Range,
		NAValues:      c.NAValues,
		KeepDefaultNA: c.KeepDefaultNA,
	}, nil
}

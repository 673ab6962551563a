package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cyberman54/ESP32-Paxcounter/internal/config"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/options"
	"github.com/cyberman54/ESP32-Paxcounter/internal/uplink"
	"github.com/cyberman54/ESP32-Paxcounter/pkg/paxdecode"
)

var (
	rootCmd = &cobra.Command{
		Use:   "paxdecode [port] [payload]",
		Short: "Decode ESP32 paxcounter LoRaWAN payloads",
		Long: "paxdecode decodes ESP32 paxcounter uplink payloads (hex or base64) into named fields.\n" +
			"Without arguments it reads \"<port> <payload>\" lines or JSON uplinks from stdin.",
		Args:              cobra.MaximumNArgs(2),
		PersistentPreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runDecode(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	schemasCmd = &cobra.Command{
		Use:   "schemas",
		Short: "List the variant table of each payload format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := driver.Names()
			if cmd.Flags().Changed("format") || os.Getenv(config.EnvFormat) != "" {
				names = []string{settings.Format}
			}
			return printSchemas(cmd.OutOrStdout(), names)
		},
	}

	configPath string
	format     string
	convert    bool
	includeRaw bool
	logLevel   string

	settings config.Config
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&format, "format", "", "payload format ("+strings.Join(driver.Names(), ", ")+")")
	flags.BoolVar(&convert, "convert", true, "apply the console conversion (pax count, scaling)")
	flags.BoolVar(&includeRaw, "raw", false, "include payload bytes and port in JSON uplink output")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(schemasCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// loadSettings merges the config file, environment and explicit flags.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("convert") {
		cfg.Convert = convert
	}
	if flags.Changed("raw") {
		cfg.IncludeRaw = includeRaw
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := options.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	settings = cfg
	logrus.WithFields(logrus.Fields{
		"format":  cfg.Format,
		"convert": cfg.Convert,
		"raw":     cfg.IncludeRaw,
	}).Debug("settings loaded")
	return nil
}

func decodeOptions() paxdecode.Options {
	return paxdecode.Options{
		Format:     settings.Format,
		Raw:        !settings.Convert,
		IncludeRaw: settings.IncludeRaw,
	}
}

func runInteractive(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	logrus.Infof("paxdecode %s mode. Enter \"<port> <payload>\" or a JSON uplink (Ctrl+D to exit).", settings.Format)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(out, line); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

// runDecode prints a Result for text input and a formatter output object
// for JSON uplinks.
func runDecode(out io.Writer, line string) error {
	up, err := uplink.Parse(line)
	if err != nil {
		return err
	}
	opts := decodeOptions()
	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		res := paxdecode.DecodeUplinkWithOptions(paxdecode.Uplink{Bytes: up.Bytes, FPort: up.Port}, opts)
		for _, w := range res.Warnings {
			logrus.WithField("port", up.Port).Warn(w)
		}
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	result, err := paxdecode.DecodeWithOptions(up.Bytes, up.Port, opts)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"port":   result.Port,
		"bytes":  result.ByteCount,
		"schema": result.Schema,
	}).Debug("decoded payload")
	if !result.Recognized {
		logrus.WithField("port", up.Port).Warnf("no %s variant for %d bytes", result.Format, result.ByteCount)
	}
	fmt.Fprintln(out, result.String())
	return nil
}

func printSchemas(out io.Writer, names []string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		f, err := driver.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Description)
		fmt.Fprintln(w, "PORT\tLENGTH\tSCHEMA\tFIELDS")
		for _, v := range f.Variants {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.Port, lengthRule(v), v.Name(), fieldList(v))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func lengthRule(v driver.Variant) string {
	switch v.Match {
	case driver.Exact:
		return fmt.Sprintf("=%d", v.Length)
	case driver.Longer:
		return fmt.Sprintf(">%d", v.Length)
	default:
		return "any"
	}
}

func fieldList(v driver.Variant) string {
	if v.Schema == nil {
		return v.Raw + ":uint8"
	}
	parts := make([]string, 0, len(v.Schema.Fields()))
	for _, f := range v.Schema.Fields() {
		parts = append(parts, f.Name+":"+f.Codec.Name())
	}
	return strings.Join(parts, ", ")
}

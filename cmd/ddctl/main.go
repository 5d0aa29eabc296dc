// Command ddctl calls the DonDominio API from the shell.
//
// Subcommands
//
//	call <resource_operation> [key=value ...]   run any operation, e.g. domain_getInfo
//	ops [resource]                              list the operations call accepts
//	check, whois <domain>                       shortcuts for domain_check / domain_whois
//	hello                                       tool_hello connection test
//	info                                        settings summary plus connection test
//	config                                      print the effective settings as YAML
//
// Settings come from flags, DDCTL_* variables (DDCTL_USER, DDCTL_PASSWORD,
// DDCTL_ENDPOINT, ...) and ~/.ddctl/config.yaml, in that order of precedence.
//
// Run examples
//
//	ddctl check example.com
//	ddctl call domain_getInfo domain=example.com infoType=status
//	ddctl call domain_create domain=example.com period:=1 owner.ID=ABC-123
//	ddctl call domain_updateNameServers domain=example.com nameservers[]=ns1.example.net nameservers[]=ns2.example.net
//	ddctl call account_zones tld=es --format yaml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	dd "github.com/datum-labs/dondominio"
)

var (
	flagFormat string
	flagRaw    bool
)

func main() {
	v := viper.New()

	root := &cobra.Command{
		Use:           "ddctl",
		Short:         "DonDominio API CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.ddctl/config.yaml)")
	pf.String("endpoint", dd.DefaultEndpoint, "API endpoint")
	pf.Int("port", dd.DefaultPort, "API port")
	pf.String("user", "", "API username")
	pf.String("password", "", "API password")
	pf.Duration("timeout", dd.DefaultTimeout, "request timeout")
	pf.Bool("verify-ssl", true, "verify the server certificate")
	pf.Bool("validate", true, "validate parameters before sending")
	pf.Bool("debug", false, "log requests and responses")
	pf.StringVar(&flagFormat, "format", dd.OutputJSONPretty, "output format: "+strings.Join(dd.OutputFormats, ", "))
	pf.BoolVar(&flagRaw, "raw", false, "print the raw response envelope")

	root.AddCommand(cmdCall(v), cmdOps(v), cmdCheck(v), cmdWhois(v), cmdHello(v), cmdInfo(v), cmdConfig(v))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var apiErr *dd.APIError
		if errors.As(err, &apiErr) {
			for _, m := range apiErr.Messages {
				fmt.Fprintln(os.Stderr, "  -", m)
			}
		}
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("DDCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ddctl"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func settings(v *viper.Viper) dd.Config {
	cfg := dd.NewConfig()
	cfg.Endpoint = v.GetString("endpoint")
	cfg.Port = v.GetInt("port")
	cfg.User = v.GetString("user")
	cfg.Password = v.GetString("password")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.VerifySSL = v.GetBool("verify-ssl")
	cfg.AutoValidate = v.GetBool("validate")
	cfg.Debug = v.GetBool("debug")
	cfg.UserAgent = map[string]string{"ClientTool": "ddctl"}
	return cfg
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zc.Build()
}

// newClient constructs the dondominio.Client from flags, env and config file.
func newClient(v *viper.Viper) (*dd.Client, error) {
	cfg := settings(v)
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	return dd.New(dd.WithConfig(cfg), dd.WithLogger(logger))
}

func cmdCall(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "call <resource_operation> [key=value ...]",
		Short: "Run any API operation",
		Long: "Run any API operation. key=value sends a string, key:=value sends a JSON\n" +
			"value (period:=1, premium:=true), key[]=v appends to a list and role.Field=v\n" +
			"fills a contact sub-record (owner, admin, tech, billing).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()
			if !c.HasCall(args[0]) {
				return fmt.Errorf("unknown operation %q, see `ddctl ops`", args[0])
			}
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			resp, err := c.Call(cmd.Context(), args[0], params)
			return printResponse(resp, err)
		},
	}
}

func cmdOps(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ops [resource]",
		Short: "List available operations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// listing needs no account, so stand-in credentials are fine
			c, err := dd.New(dd.WithConfig(settings(v)), dd.WithCredentials("ops", "ops"))
			if err != nil {
				return err
			}
			calls := c.Calls()
			resources := make([]string, 0, len(calls))
			for r := range calls {
				if len(args) == 0 || args[0] == r {
					resources = append(resources, r)
				}
			}
			slices.Sort(resources)
			for _, r := range resources {
				for _, op := range calls[r] {
					fmt.Printf("%s_%s\n", r, op)
				}
			}
			return nil
		},
	}
}

func cmdCheck(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain>",
		Short: "Check domain availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()
			return printResponse(c.Domain.Check(cmd.Context(), args[0]))
		},
	}
}

func cmdWhois(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "whois <domain>",
		Short: "Fetch whois data for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()
			return printResponse(c.Domain.Whois(cmd.Context(), args[0]))
		},
	}
}

func cmdHello(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Connection test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()
			return printResponse(c.Tool.Hello(cmd.Context()))
		},
	}
}

func cmdInfo(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show settings and test the connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), c.Config().Timeout+5*time.Second)
			defer cancel()

			info, err := c.Info(ctx)
			printInfo(info)
			if err != nil {
				return err
			}
			fmt.Println(" [OK] Success!")
			return nil
		},
	}
}

func cmdConfig(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := settings(v)
			out := map[string]any{
				"endpoint":   cfg.Endpoint,
				"port":       cfg.Port,
				"user":       cfg.User,
				"password":   strings.Repeat("*", len(cfg.Password)),
				"timeout":    cfg.Timeout.String(),
				"verify-ssl": cfg.VerifySSL,
				"validate":   cfg.AutoValidate,
				"debug":      cfg.Debug,
			}
			if f := v.ConfigFileUsed(); f != "" {
				out["config"] = f
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}

func printInfo(info *dd.Info) {
	if info == nil {
		return
	}
	fmt.Println(" Settings")
	fmt.Println(" ========")
	fmt.Printf(" %-18s %s\n", "URI:", info.Endpoint)
	fmt.Printf(" %-18s %d\n", "Port:", info.Port)
	fmt.Printf(" %-18s %s\n", "Username:", info.User)
	fmt.Printf(" %-18s %s\n", "Password:", info.Password)
	fmt.Printf(" %-18s %s\n", "Validate params:", yesNo(info.AutoValidate))
	fmt.Printf(" %-18s %s\n", "Check versions:", yesNo(info.VersionCheck))
	fmt.Printf(" %-18s %s\n", "Debug mode:", yesNo(info.Debug))
	fmt.Printf(" %-18s %s\n", "Request timeout:", info.Timeout)
	fmt.Printf(" %-18s %s\n", "Verify SSL certs:", yesNo(info.VerifySSL))
	fmt.Println()
	if info.APIVersion != "" {
		fmt.Printf(" %-18s %s\n", "Local IP:", info.IP)
		fmt.Printf(" %-18s %s\n", "Language:", info.Lang)
		fmt.Printf(" %-18s %s\n", "API Version:", info.APIVersion)
		fmt.Println()
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func printResponse(resp *dd.Response, err error) error {
	if err != nil {
		return err
	}
	if flagRaw {
		fmt.Println(resp.Raw())
		return nil
	}
	out, err := resp.Output(flagFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// parseParams turns key=value arguments into call parameters. Plain values are
// strings; key:=value decodes value as JSON so numbers, booleans and lists keep
// their type. key[]=v appends to a list and role.Field=v fills a contact record.
func parseParams(args []string) (dd.Params, error) {
	params := dd.Params{}
	for _, a := range args {
		k, raw, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", a)
		}
		switch {
		case strings.HasSuffix(k, ":"):
			val, err := decodeJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", a, err)
			}
			params[strings.TrimSuffix(k, ":")] = val
		case strings.HasSuffix(k, "[]"):
			k = strings.TrimSuffix(k, "[]")
			list, _ := params[k].([]string)
			params[k] = append(list, raw)
		case strings.Contains(k, "."):
			role, field, _ := strings.Cut(k, ".")
			sub, _ := params[role].(map[string]any)
			if sub == nil {
				sub = map[string]any{}
				params[role] = sub
			}
			sub[field] = raw
		default:
			params[k] = raw
		}
	}
	return params, nil
}

// decodeJSON keeps whole numbers as int64 so integer parameters validate.
func decodeJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return fromNumber(v), nil
}

func fromNumber(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	case []any:
		for i := range x {
			x[i] = fromNumber(x[i])
		}
	case map[string]any:
		for k := range x {
			x[k] = fromNumber(x[k])
		}
	}
	return v
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/resolver"
)

var propCmd = &cobra.Command{
	Use:   "prop KEY",
	Short: "Resolve a project property",
	Long: `Look KEY up in local.properties, then -P properties, gradle.properties and
ORG_GRADLE_PROJECT_<KEY>. Prints "` + resolver.NotFound + `" when the key is
absent everywhere and no --default is given.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runProp,
	SilenceUsage: true,
}

func init() {
	propCmd.Flags().String("as", "string", "Value type: string, int, bool, double or list")
	propCmd.Flags().String("default", "", "Value used when the key is absent or malformed")
	propCmd.Flags().String("delimiter", resolver.DefaultDelimiter, "List delimiter")
}

func runProp(cmd *cobra.Command, args []string) error {
	as, _ := cmd.Flags().GetString("as")
	def, _ := cmd.Flags().GetString("default")
	delim, _ := cmd.Flags().GetString("delimiter")
	hasDefault := cmd.Flags().Changed("default")

	s, err := openSession(cmd, nil, sessionOptions{quiet: true})
	if err != nil {
		return err
	}
	defer s.Close()

	key := args[0]
	props := s.ext.Properties()
	out := cmd.OutOrStdout()

	v, err := props.Get(key)
	if err != nil {
		return codes.Wrap(codes.PropertyReadFailed, err)
	}

	switch as {
	case "string":
		if !v.Found() && hasDefault {
			fmt.Fprintln(out, def)
			return nil
		}

		fmt.Fprintln(out, v.String())
	case "int":
		d, err := parseDefault(def, hasDefault, 0, strconv.Atoi)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, v.Int(d))
	case "bool":
		d, err := parseDefault(def, hasDefault, false, strconv.ParseBool)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, v.Bool(d))
	case "double", "float":
		d, err := parseDefault(def, hasDefault, 0, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(out, strconv.FormatFloat(v.Float(d), 'g', -1, 64))
	case "list":
		for _, item := range v.List(delim) {
			fmt.Fprintln(out, item)
		}
	default:
		return codes.Wrap(codes.ConfigError, fmt.Errorf("unknown value type %q", as))
	}

	return nil
}

func parseDefault[T any](raw string, set bool, zero T, parse func(string) (T, error)) (T, error) {
	if !set {
		return zero, nil
	}

	v, err := parse(raw)
	if err != nil {
		return zero, codes.Wrap(codes.ConfigError, fmt.Errorf("invalid --default %q: %w", raw, err))
	}

	return v, nil
}

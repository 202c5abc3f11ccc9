package cmd

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/catalog/remote"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/inline"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/provider"
	"github.com/yogaland/yogaland/query"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the video catalog from scripts",
}

func addInlineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "Only videos of this category")
	cmd.Flags().StringP("pick", "p", "", "Select one video: first, last, an index or id:<id>")
	cmd.Flags().BoolP("json", "j", false, "Write JSON")
	cmd.Flags().BoolP("ads", "a", false, "Include the ad inventory in JSON output")
}

func runInline(cmd *cobra.Command, q string) {
	source, err := provider.Default()
	handleErr(err)

	options := &inline.Options{
		Out:        cmd.OutOrStdout(),
		Provider:   source,
		Query:      q,
		Category:   lo.Must(cmd.Flags().GetString("category")),
		Json:       lo.Must(cmd.Flags().GetBool("json")),
		IncludeAds: lo.Must(cmd.Flags().GetBool("ads")),
	}

	if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
		picker, err := inline.ParsePicker(pick)
		handleErr(err)
		options.Picker = mo.Some(picker)
	}

	handleErr(inline.Run(cmd.Context(), options))
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	addInlineFlags(catalogListCmd)
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List videos",
	Aliases: []string{"ls"},
	Example: "  yogaland catalog list --category Lifestyle --json",
	Run: func(cmd *cobra.Command, args []string) {
		runInline(cmd, "")
	},
}

func init() {
	catalogCmd.AddCommand(catalogSearchCmd)
	addInlineFlags(catalogSearchCmd)
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search titles, descriptions and categories",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")
		if err := query.Remember(q, 1); err != nil {
			log.Warn(err)
		}
		runInline(cmd, q)
	},
}

func init() {
	catalogCmd.AddCommand(catalogCategoriesCmd)
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories of the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		source, err := provider.Default()
		handleErr(err)

		videos, err := source.Videos(cmd.Context())
		handleErr(err)

		for _, c := range catalog.Categories(videos) {
			count := len(catalog.ByCategory(videos, c))
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(c), style.Faint("("+util.Quantify(count, "video", "videos")+")"))
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the --json output",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(inline.Schema()))
	},
}

func init() {
	catalogCmd.AddCommand(catalogSourcesCmd)
}

var catalogSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available catalog backends",
	Run: func(cmd *cobra.Command, args []string) {
		current := viper.GetString(key.CatalogSource)

		for _, p := range provider.Builtins() {
			marker := "  "
			if strings.EqualFold(p.ID, current) {
				marker = style.Fg(color.Green)(icon.Get(icon.Success)) + " "
			}
			cmd.Printf("%s%s %s\n", marker, style.Bold(p.ID), style.Faint(p.Description))
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogRefreshCmd)
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop cached remote catalog responses",
	Run: func(cmd *cobra.Command, args []string) {
		source, err := provider.Default()
		handleErr(err)

		client, ok := source.(*remote.Client)
		if !ok {
			cmd.Println(style.Faint("The bundled catalog is not cached"))
			return
		}

		handleErr(client.Invalidate())
		_, err = client.Videos(cmd.Context())
		handleErr(err)
		cmd.Printf("%s catalog refreshed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

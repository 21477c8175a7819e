// file: cmd/root.go
// version: 1.2.0
// guid: 1f3a5b7c-9d0e-4f2a-8b4c-6d8e0f2a4b6c

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jdfalk/school-finder/internal/config"
	"github.com/jdfalk/school-finder/internal/matcher"
	"github.com/jdfalk/school-finder/internal/metrics"
	"github.com/jdfalk/school-finder/internal/server"
	"github.com/jdfalk/school-finder/internal/store"
	"github.com/jdfalk/school-finder/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var dataFile string
var scoreThreshold int
var maxResults int
var verifyURLTemplate string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "school-finder",
	Short: "Find school records by approximate name",
	Long: `School Finder locates records in a regional school directory by
approximate name, tolerating typos and partial input, optionally
narrowed to an administrative district.

It serves a JSON API for the web front end and offers one-shot
searches from the command line.`,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [school name]",
	Short: "Search the directory for a school by approximate name",
	Long:  `Search the school directory for the best matches to a free-text name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("school name must not be empty")
		}

		ds := store.Load(config.AppConfig.DataFile)
		if ds.Empty() {
			return fmt.Errorf("no records loaded from %s; point --data at a CSV export of the directory", config.AppConfig.DataFile)
		}
		fmt.Printf("Loaded %d records from %s\n", ds.Len(), config.AppConfig.DataFile)

		district, _ := cmd.Flags().GetString("district")
		subset := ds.FilterByDistrict(district)
		if subset.Empty() {
			fmt.Printf("No schools found in district %q. Try %q or a different district.\n", district, store.AllDistricts)
			return nil
		}

		threshold := config.AppConfig.ScoreThreshold
		if t, _ := cmd.Flags().GetInt("threshold"); t > 0 {
			threshold = t
		}
		limit := config.AppConfig.MaxResults
		if l, _ := cmd.Flags().GetInt("limit"); l > 0 {
			limit = l
		}

		ranker := matcher.NewRanker(matcher.WeightedScorer{}, threshold, limit)
		matches := ranker.Rank(query, subset.Records())
		if len(matches) == 0 {
			fmt.Printf("No strong matches (>= %d%%). Add more of the name or change district.\n", threshold)
			return nil
		}

		fmt.Printf("Showing %d best match(es):\n\n", len(matches))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CONF\tSCHOOL\tUDISE\tDISTRICT\tBLOCK\tVILLAGE\tMANAGEMENT")
		for _, m := range matches {
			fmt.Fprintf(w, "%d%%\t%s\t%s\t%s\t%s\t%s\t%s\n",
				m.Score, m.Record.Name, m.Record.UDISECode, m.Record.District,
				m.Record.Block, m.Record.Village, m.Record.Management)
		}
		return w.Flush()
	},
}

// districtsCmd represents the districts command
var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "List the districts present in the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := store.Load(config.AppConfig.DataFile)
		if ds.Empty() {
			return fmt.Errorf("no records loaded from %s", config.AppConfig.DataFile)
		}
		fmt.Println(store.AllDistricts)
		for _, d := range ds.Districts() {
			fmt.Println(d)
		}
		return nil
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the web server that backs the school finder front end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.NewStore(store.Load(config.AppConfig.DataFile))
		ds := st.Current()
		if ds.Empty() {
			fmt.Printf("Warning: no records loaded from %s; the upload endpoint remains available\n", config.AppConfig.DataFile)
		} else {
			fmt.Printf("Loaded %d records from %s (dataset %s)\n", ds.Len(), config.AppConfig.DataFile, ds.Version)
			metrics.Register()
			metrics.IncDatasetLoad("file")
		}

		srv := server.NewServer(st)

		// Optionally reload when the data file changes on disk
		if config.AppConfig.WatchDataFile {
			w := watcher.New(srv.ReloadFromFile, 0)
			if err := w.Start(config.AppConfig.DataFile); err != nil {
				fmt.Printf("Warning: could not watch %s: %v\n", config.AppConfig.DataFile, err)
			} else {
				defer w.Stop()
				fmt.Printf("Watching %s for changes\n", config.AppConfig.DataFile)
			}
		}

		cfg := server.GetDefaultServerConfig()
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.school-finder.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "karnataka_schools.csv", "CSV export of the school directory")
	rootCmd.PersistentFlags().IntVar(&scoreThreshold, "threshold", 75, "minimum confidence score (0-100) for a match")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", 5, "maximum number of matches to return")
	rootCmd.PersistentFlags().StringVar(&verifyURLTemplate, "verify-url", "https://udiseplus.gov.in/school/SchoolDirectory?udisecode=%s", "URL template for the verification link")

	viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("score_threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("max_results", rootCmd.PersistentFlags().Lookup("max-results"))
	viper.BindPFlag("verify_url_template", rootCmd.PersistentFlags().Lookup("verify-url"))

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(districtsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)

	// Search command specific flags
	searchCmd.Flags().String("district", store.AllDistricts, "restrict matching to one district")
	searchCmd.Flags().Int("threshold", 0, "override the confidence threshold for this search")
	searchCmd.Flags().Int("limit", 0, "override the result cap for this search")

	// Serve command specific flags
	serveCmd.Flags().String("port", "8080", "port to run the web server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
	serveCmd.Flags().Bool("watch", false, "reload the dataset when the data file changes")
	viper.BindPFlag("watch_data_file", serveCmd.Flags().Lookup("watch"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".school-finder")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}

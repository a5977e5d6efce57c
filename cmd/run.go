package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitkit/screener/internal/intake"
	"github.com/recruitkit/screener/internal/jobspec"
	"github.com/recruitkit/screener/internal/logger"
	"github.com/recruitkit/screener/internal/orchestrator"
	"github.com/recruitkit/screener/internal/results"
	"github.com/recruitkit/screener/internal/screening"
	"github.com/recruitkit/screener/internal/secrets"
)

const (
	PromptSortByScore = "Sort by score"
	PromptReview      = "Review a candidate"
	PromptReport      = "Report by status"
	PromptDumpToFile  = "Dump results to file"
	PromptExit        = "Exit"
	PromptBack        = "back"

	PromptTogglePainPoints = "Show/hide pain points"
	PromptToggleSummary    = "Show/hide summary"
	PromptDownload         = "Download original resume"
)

var errExit = errors.New("exit requested")

var reviewPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReview, PromptSortByScore, PromptReport, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect resumes, submit them for analysis and review the candidate scores",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("resume", "r", nil, "resume file to submit. Can be repeated.")
	runCmd.Flags().BoolP("no-interactive", "y", false, "dump results to a file and exit instead of the review loop")
	runCmd.Flags().String("download-dir", "", "directory for downloaded resumes. Default is the current directory.")

	viper.BindPFlag("download-dir", runCmd.Flags().Lookup("download-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %v", err)
	}

	if config == nil {
		log.Fatal("config is required")
	}

	zlog, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		File:  config.LogFile,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	zlog.Info("starting the screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	client := newClient(ctx, config, zlog)

	collector := intake.NewCollector(zlog)
	paths, _ := cmd.Flags().GetStringArray("resume")
	for _, path := range paths {
		if err := collector.AddPath(path); err != nil {
			zlog.Fatal("adding resume", zap.Error(err))
		}
	}

	if config.Intake != nil && config.Intake.Dir != "" {
		if err := collector.CollectDir(config.Intake.Dir, config.Intake.Patterns); err != nil {
			zlog.Fatal("collecting intake directory", zap.Error(err))
		}
	}

	zlog.Info("collected resumes",
		zap.Int("count", collector.Len()),
		zap.Strings("names", collector.Names()),
	)

	spec, err := buildJobSpec(config, zlog)
	if err != nil {
		zlog.Fatal("building job spec", zap.Error(err))
	}

	store := results.NewStore()
	orch := orchestrator.New(client, store, zlog)

	if err := orch.Submit(collector.Files(), spec); err != nil {
		var submitErr *orchestrator.SubmitError
		if errors.As(err, &submitErr) {
			zlog.Fatal("submission failed",
				zap.String("kind", string(submitErr.Kind)),
				zap.String("reason", submitErr.Message),
			)
		}
		zlog.Fatal("submission failed", zap.Error(err))
	}

	if store.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "the service returned no candidate results"))
		return
	}

	if cmd.Flag("no-interactive").Value.String() == "true" {
		filename, err := store.Results().DumpToTmpFile()
		if err != nil {
			zlog.Fatal("dumping results to file", zap.Error(err))
		}
		zlog.Info("dumping results to file", zap.String("filename", filename))
		return
	}

	for {
		_, action, err := reviewPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, client, store, zlog); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, client *screening.Client, store *results.Store, zlog *zap.Logger) error {
	switch action {
	case PromptSortByScore:
		store.SortByScoreDescending()
		printResults(store)
		return nil
	case PromptReport:
		pretty, _ := json.MarshalIndent(store.Results().ReportByStatus(), "", "  ")
		zlog.Info(string(pretty), zap.Int("candidates", store.Len()))
		return nil
	case PromptReview:
		return reviewCandidate(client, store, zlog)
	case PromptDumpToFile:
		filename, err := store.Results().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		zlog.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		zlog.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func reviewCandidate(client *screening.Client, store *results.Store, zlog *zap.Logger) error {
	for {
		items := make([]string, 0, store.Len())
		for _, result := range store.Items() {
			items = append(items, candidateLabel(result))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		result := store.Results().FindByFile(resumeFileOf(selected))
		if result == nil {
			return fmt.Errorf("there is no candidate for %q", selected)
		}

		if err := candidateActions(client, store, result, zlog); err != nil {
			return err
		}
	}
}

func candidateActions(client *screening.Client, store *results.Store, result *screening.CandidateResult, zlog *zap.Logger) error {
	for {
		printCandidate(store, result)

		actionPrompt := promptui.Select{
			Label: result.CandidateName,
			Items: []string{PromptTogglePainPoints, PromptToggleSummary, PromptDownload, PromptBack},
		}

		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptBack:
			return nil
		case PromptTogglePainPoints:
			store.Toggle(result.ResumeFileName, results.SectionPainPoints)
		case PromptToggleSummary:
			store.Toggle(result.ResumeFileName, results.SectionSummary)
		case PromptDownload:
			dest, err := client.Download(result.ResumeFileName, viper.GetString("download-dir"))
			if err != nil {
				return fmt.Errorf("download resume: %w", err)
			}
			zlog.Info("downloaded resume",
				append(logger.CandidateFields(result.CandidateName, result.ResumeFileName),
					zap.String("destination", dest))...,
			)
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

// candidateLabel renders a single selectable line. The resume file name sits
// at the end after a separator so the selection can be mapped back.
func candidateLabel(result *screening.CandidateResult) string {
	return fmt.Sprintf("%s / score %d / %s / %s",
		result.CandidateName, result.Score, result.Status(), result.ResumeFileName,
	)
}

func resumeFileOf(label string) string {
	parts := strings.Split(label, " / ")
	return parts[len(parts)-1]
}

func printResults(store *results.Store) {
	for _, result := range store.Items() {
		printCandidate(store, result)
	}
}

func printCandidate(store *results.Store, result *screening.CandidateResult) {
	fmt.Printf("\n%s\n", candidateLabel(result))

	if store.Visible(result.ResumeFileName, results.SectionPainPoints) {
		printPainPoints(result.PainPoints)
	}

	if store.Visible(result.ResumeFileName, results.SectionSummary) && result.Summary != "" {
		fmt.Printf("  summary: %s\n", result.Summary)
	}
}

func printPainPoints(points *screening.PainPoints) {
	if points.Count() == 0 {
		fmt.Println("  no pain points reported")
		return
	}

	for _, bucket := range []struct {
		name  string
		items []string
	}{
		{"critical", points.Critical},
		{"major", points.Major},
		{"minor", points.Minor},
	} {
		for _, item := range bucket.items {
			fmt.Printf("  [%s] %s\n", bucket.name, item)
		}
	}
}

func newClient(ctx context.Context, config *Config, zlog *zap.Logger) *screening.Client {
	token, err := resolveToken(config)
	if err != nil {
		zlog.Fatal(
			"loading service token",
			zap.Error(err),
			zap.String("hint", "set SCREENER_TOKEN_FILE environment variable or the 'service.token-file' key in the configuration file"),
		)
	}

	client := screening.New(ctx, zlog, token)

	if config.Service != nil {
		if config.Service.Endpoint != "" {
			client.BaseURL = strings.TrimRight(config.Service.Endpoint, "/")
		}
		if config.Service.UserAgent != "" {
			client.UserAgent = config.Service.UserAgent
		}
	}

	return client
}

// resolveToken loads the optional service token. A missing token is fine; a
// configured but unreadable one is not.
func resolveToken(config *Config) (string, error) {
	tokenFile := ""
	if config.Service != nil {
		tokenFile = strings.TrimSpace(config.Service.TokenFile)
	}

	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("service.token-file"))
	}

	return secrets.LoadOptional(secrets.Source{
		Name: "service token",
		File: tokenFile,
	})
}

func buildJobSpec(config *Config, zlog *zap.Logger) (*jobspec.JobSpec, error) {
	job := config.Job
	if job == nil {
		job = &JobConfig{}
	}

	description := job.Description
	if description == "" && job.DescriptionFile != "" {
		data, err := readDescriptionFile(job.DescriptionFile)
		if err != nil {
			return nil, err
		}
		description = data
	}

	zlog.Debug("job description loaded",
		zap.String("preview", logger.TruncateForLog(description, 120)),
	)

	years := job.RequiredExperience
	if years == 0 && job.AutoExperience {
		years = jobspec.ExtractRequiredExperience(description)
		if years > 0 {
			zlog.Info("extracted required experience from job description", zap.Int("years", years))
		}
	}

	return jobspec.New(description, years), nil
}

func readDescriptionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job description file %q: %w", path, err)
	}

	return string(data), nil
}

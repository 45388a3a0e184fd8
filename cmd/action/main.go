package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aaronbarnaby/create-release-action/internal/handlers"
	"github.com/aaronbarnaby/create-release-action/internal/parser"
	"github.com/aaronbarnaby/create-release-action/internal/repositories"
	"github.com/aaronbarnaby/create-release-action/internal/services"
	"github.com/aaronbarnaby/create-release-action/pkg/config"
	"github.com/aaronbarnaby/create-release-action/pkg/database"
	"github.com/aaronbarnaby/create-release-action/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "create-release-action",
		Short:         "Generate grouped changelogs and contributor rosters for releases",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newExportCmd())

	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		repository   string
		tag          string
		previousTag  string
		contributors string
		local        bool
		repoPath     string
		publish      bool
		reportPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the changelog for a commit range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(config.AppConfig.LogLevel)

			// Flags override the runner-provided environment
			if repository == "" {
				repository = config.AppConfig.GitHub.Repository
			}
			if tag == "" {
				tag = config.AppConfig.Release.Tag
			}
			if previousTag == "" {
				previousTag = config.AppConfig.Release.PreviousTag
			}
			if contributors == "" {
				contributors = config.AppConfig.Release.ContributorsStyle
			}
			if repository == "" || tag == "" || previousTag == "" {
				return fmt.Errorf("repository, tag and previous-tag are required")
			}

			if err := database.Init(config.AppConfig.Database.Path); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			releaseService := buildReleaseService(log, services.ContributorStyle(contributors))
			result, err := releaseService.Generate(cmd.Context(), services.GenerateOptions{
				Repository:  repository,
				PreviousTag: previousTag,
				Tag:         tag,
				Local:       local,
				RepoPath:    repoPath,
				Publish:     publish,
			})
			if err != nil {
				return err
			}

			if reportPath != "" {
				reportService := services.NewReportService(log)
				if err := reportService.Export(result.Release, result.Classification, reportPath); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Release.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "", "repository as owner/name (defaults to GITHUB_REPOSITORY)")
	cmd.Flags().StringVar(&tag, "tag", "", "release tag (defaults to RELEASE_TAG)")
	cmd.Flags().StringVar(&previousTag, "previous-tag", "", "previous release tag (defaults to PREVIOUS_TAG)")
	cmd.Flags().StringVar(&contributors, "contributors", "", "contributor style: list or table (defaults to CONTRIBUTORS_STYLE)")
	cmd.Flags().BoolVar(&local, "local", false, "read commits from a local repository instead of the GitHub API")
	cmd.Flags().StringVar(&repoPath, "repo-path", ".", "path of the local repository used with --local")
	cmd.Flags().BoolVar(&publish, "publish", false, "create a GitHub release with the generated changelog")
	cmd.Flags().StringVar(&reportPath, "report", "", "export an .xlsx release report to this path")

	return cmd
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <release-id>",
		Short: "Export a stored release to an .xlsx report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(config.AppConfig.LogLevel)

			if err := database.Init(config.AppConfig.Database.Path); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			releaseRepo := repositories.NewReleaseRepository(database.DB)
			release, err := releaseRepo.GetByID(args[0])
			if err != nil {
				return fmt.Errorf("failed to load release: %w", err)
			}
			if release == nil {
				return fmt.Errorf("release %s not found", args[0])
			}

			classification := services.NewClassifierService(log).Classify(release.Records)
			reportService := services.NewReportService(log)
			return reportService.Export(release, classification, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "release.xlsx", "path of the .xlsx report to write")

	return cmd
}

func newPreviewCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run a local server that renders changelog previews",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(config.AppConfig.LogLevel)

			if addr == "" {
				addr = ":" + config.AppConfig.Server.Port
			}

			if err := database.Init(config.AppConfig.Database.Path); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			gin.SetMode(gin.ReleaseMode)
			router := gin.Default()
			setupRoutes(router, log)

			server := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
			}

			log.WithField("addr", server.Addr).Info("Preview server starting")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :PORT)")

	return cmd
}

func setupRoutes(router *gin.Engine, log *logrus.Logger) {
	classifierService := services.NewClassifierService(log)
	releaseRepo := repositories.NewReleaseRepository(database.DB)

	healthHandler := handlers.NewHealthHandler()
	changelogHandler := handlers.NewChangelogHandler(classifierService)
	releaseHandler := handlers.NewReleaseHandler(releaseRepo)

	router.GET("/health", healthHandler.HealthCheck)
	router.POST("/render", changelogHandler.Render)
	router.GET("/releases", releaseHandler.ListReleases)
	router.GET("/releases/:id", releaseHandler.GetRelease)
	router.DELETE("/releases/:id", releaseHandler.DeleteRelease)
}

func buildReleaseService(log *logrus.Logger, style services.ContributorStyle) *services.ReleaseService {
	githubService := services.NewGitHubService(config.AppConfig.GitHub.Token, log)
	commitParser := parser.NewParser(log)
	classifierService := services.NewClassifierService(log)
	changelogService := services.NewChangelogService(style)
	releaseRepo := repositories.NewReleaseRepository(database.DB)

	return services.NewReleaseService(githubService, commitParser, classifierService, changelogService, releaseRepo, log)
}

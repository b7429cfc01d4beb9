package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mystickers/mystickers/pkg/internal/cache"
	"github.com/mystickers/mystickers/pkg/internal/database"
	"github.com/mystickers/mystickers/pkg/internal/server"
	"github.com/mystickers/mystickers/pkg/internal/server/api"
	"github.com/mystickers/mystickers/pkg/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"

	pkg "github.com/mystickers/mystickers/pkg/internal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("mystickers")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewSource()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Local cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up local cache.")
	}

	// Construct services
	uploader, err := services.NewUploader()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up the storage uploader.")
	}
	verifier, err := services.NewOwnershipVerifier()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up the ownership verifier.")
	}

	recycler := services.NewRecycler(db, uploader)
	stickers := services.NewStickerService(db, recycler)
	favorites := services.NewFavoriteService(db)
	cleaner := services.NewCleaner(db)

	// Set up some workers
	for idx := 0; idx < viper.GetInt("workers.files_deletion"); idx++ {
		go recycler.StartConsumeDeletionTask()
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", cleaner.DoAutoDatabaseCleanup)
	quartz.AddFunc("@midnight", recycler.RunOrphanCollectionTask)
	quartz.Start()

	// Server
	srv := server.NewServer(&api.Handler{
		Stickers:  stickers,
		Favorites: favorites,
		Uploader:  uploader,
		Verifier:  verifier,
		AdminWallets: lo.FilterMap(strings.Split(viper.GetString("admin.wallets"), ","), func(item string, _ int) (string, bool) {
			item = strings.ToLower(strings.TrimSpace(item))
			return item, len(item) > 0
		}),
	})
	go srv.Listen()

	// Messages
	log.Info().Msgf("MyStickers v%s is started...", pkg.AppVersion)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msgf("MyStickers v%s is quitting...", pkg.AppVersion)

	quartz.Stop()
}

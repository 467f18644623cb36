package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"lcmtv/domain/repository"
	"lcmtv/infrastructure/cache"
	youtubeclient "lcmtv/infrastructure/clients/youtube"
	"lcmtv/infrastructure/configuration"
	"lcmtv/infrastructure/logger"
	"lcmtv/infrastructure/persistence"
	"lcmtv/infrastructure/pubsub"
	"lcmtv/usecase"
)

const usageText = `Usage: importer <command> [args]

Commands:
  url <video_url> <category_id>
  keyword <keyword> <category_id> [limit]
  playlist <playlist_id> <category_id> [limit]
  channel <channel_id> <category_id> [limit]
  trending <category_id> [limit] [region_code]
  livestream_url <video_url> <category_id>
  livestream_channel <channel_id> <category_id> [limit]
  initial
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	ctx := context.Background()

	configuration.LoadEnvFromFile("config.env", ".env")

	uc, err := wire(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Importer initialization failed")
		os.Exit(1)
	}

	imported, err := run(ctx, uc, os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d record(s)\n", imported)
}

func run(ctx context.Context, uc usecase.IIngestionUseCase, command string, args []string) (int, error) {
	switch command {
	case "url":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer url <video_url> <category_id>")
		}
		return uc.ImportByURL(ctx, args[0], parseID(args[1]))
	case "keyword":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer keyword <keyword> <category_id> [limit]")
		}
		return uc.ImportByKeyword(ctx, args[0], parseID(args[1]), optionalLimit(args, 2))
	case "playlist":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer playlist <playlist_id> <category_id> [limit]")
		}
		return uc.ImportFromPlaylist(ctx, args[0], parseID(args[1]), optionalLimit(args, 2))
	case "channel":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer channel <channel_id> <category_id> [limit]")
		}
		return uc.ImportFromChannel(ctx, args[0], parseID(args[1]), optionalLimit(args, 2))
	case "trending":
		if len(args) < 1 {
			return 0, fmt.Errorf("usage: importer trending <category_id> [limit] [region_code]")
		}
		region := ""
		if len(args) > 2 {
			region = args[2]
		}
		return uc.ImportTrending(ctx, parseID(args[0]), optionalLimit(args, 1), region)
	case "livestream_url":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer livestream_url <video_url> <category_id>")
		}
		return uc.ImportLivestreamByURL(ctx, args[0], parseID(args[1]))
	case "livestream_channel":
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: importer livestream_channel <channel_id> <category_id> [limit]")
		}
		return uc.ImportLiveFromChannel(ctx, args[0], parseID(args[1]), optionalLimit(args, 2))
	case "initial":
		return uc.RunInitialImport(ctx, configuration.ImportSeeds())
	default:
		return 0, fmt.Errorf("unknown command %q\n%s", command, usageText)
	}
}

func wire(ctx context.Context) (usecase.IIngestionUseCase, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}

	youtubeConfig := configuration.GetYouTubeConfig()
	if youtubeConfig.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key not configured")
	}
	source, err := youtubeclient.NewClient(ctx, &youtubeclient.Config{
		APIKey:    youtubeConfig.APIKey,
		UserAgent: youtubeConfig.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		redisClient = nil
	}

	var notifier repository.INotifier
	if pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID); err == nil {
		notifier = pubsub.NewVideoNotifier(pubSubClient, configuration.C.Pubsub.Topic)
	}

	return usecase.NewIngestionUseCase(source, store, notifier, cache.NewImportCache(redisClient)), nil
}

func newStore() (repository.IVideoStore, error) {
	switch configuration.C.Data.Source {
	case "mysql":
		db, err := persistence.NewMySQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureMySQLContentSchema(db); err != nil {
			return nil, err
		}
		return persistence.NewVideoRepositoryMySQL(db), nil
	default:
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureContentSchema(db); err != nil {
			return nil, err
		}
		return persistence.NewVideoRepository(db), nil
	}
}

func parseID(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func optionalLimit(args []string, idx int) int64 {
	if len(args) > idx {
		if v, err := strconv.ParseInt(args[idx], 10, 64); err == nil {
			return v
		}
	}
	return 0
}

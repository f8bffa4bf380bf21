// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/dfranco/incognito/internal/auth"
	"github.com/dfranco/incognito/internal/cache"
	"github.com/dfranco/incognito/internal/database"
	"github.com/dfranco/incognito/internal/handlers"
	"github.com/dfranco/incognito/internal/middleware"
)

func main() {
	auth.Init()
	handlers.InitConfig()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := context.Background()
	if err := database.Migrate(ctx); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.SeedContent(ctx); err != nil {
		log.Fatalf("failed to seed content: %v", err)
	}
	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, event journaling disabled: %v", err)
	}

	rs := handlers.NewRoomServer(database.ContentStore{}, logger)
	rs.Rooms.StartSweeper(ctx, time.Minute, roomIdleTTL())

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	// room lifecycle
	mux.Handle("/rooms/create", logged(handlers.CreateRoomHandler(rs)))
	mux.Handle("/rooms/join", logged(handlers.JoinRoomHandler(rs)))

	// room event stream
	mux.Handle("/rooms/ws/", logged(handlers.RoomWSHandler(rs)))

	// room detail + in-game actions
	mux.Handle("/rooms/", logged(handlers.RoomRouter(rs)))

	// content packs
	mux.Handle("/content/packs", logged(handlers.PacksHandler(rs)))
	mux.Handle("/content/categories", logged(handlers.CategoryItemsHandler(rs)))
	mux.Handle("/content/impostor-categories", logged(handlers.ImpostorCategoriesHandler(rs)))
	mux.Handle("/content/impostor-words", logged(handlers.ImpostorWordsHandler(rs)))

	// admin surface
	mux.Handle("/admin/login", logged(handlers.AdminLoginHandler(rs)))
	mux.Handle("/admin/rooms", logged(handlers.AdminRoomsHandler(rs)))
	mux.Handle("/admin/rooms/", logged(handlers.AdminRoomsHandler(rs)))
	mux.Handle("/admin/categories/", logged(handlers.AdminCategoryItemHandler(rs)))
	mux.Handle("/admin/impostor-words/", logged(handlers.AdminImpostorWordHandler(rs)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// roomIdleTTL reads ROOM_IDLE_TTL ("2h", "45m"); zero disables idle expiry.
func roomIdleTTL() time.Duration {
	v := os.Getenv("ROOM_IDLE_TTL")
	if v == "" {
		return 2 * time.Hour
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}

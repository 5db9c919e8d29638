package api

import (
	"fmt"
	"linkbio/internal/config"
	"linkbio/internal/database"
	"linkbio/internal/profile"
	"linkbio/internal/storage"
	"linkbio/internal/websocket"
	"log/slog"
	"net/url"
	"strings"
)

type Server struct {
	config         *config.Config
	store          *database.Store
	storage        *storage.LocalStorage
	wsHub          *websocket.Hub
	directory      *profile.Directory
	customizations *profile.Customizations
	links          *profile.Links
	resolver       *profile.Resolver
	log            *slog.Logger
}

func NewServer(cfg *config.Config, store *database.Store, storage *storage.LocalStorage, wsHub *websocket.Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	directory := profile.NewDirectory(store, store, log)
	customizations := profile.NewCustomizations(store, storage, store, log)
	links := profile.NewLinks(store, store, log)

	return &Server{
		config:         cfg,
		store:          store,
		storage:        storage,
		wsHub:          wsHub,
		directory:      directory,
		customizations: customizations,
		links:          links,
		resolver:       profile.NewResolver(store, customizations, links),
		log:            log,
	}
}

// publicURL is where visitors find the page for slug.
func (s *Server) publicURL(slug string) string {
	return fmt.Sprintf("%s/u/%s", strings.TrimRight(s.config.AppHost, "/"), url.PathEscape(slug))
}

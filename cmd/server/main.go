package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/profilehub/backend/internal/config"
	"github.com/profilehub/backend/internal/handlers"
	appMiddleware "github.com/profilehub/backend/internal/middleware"
	"github.com/profilehub/backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Firebase Auth (server-side verification of ID tokens). When the
	// project is not configured the server falls back to local JWT auth.
	authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
	})
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client, using local JWT auth: %v", err)
		authClient = nil
	}

	// Profile document store, selected by STORE_BACKEND.
	var store services.UserStore
	switch cfg.StoreBackend {
	case "firestore":
		fs, err := services.NewFirestoreUserService(ctx, services.FirestoreConfig{
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		})
		if err != nil {
			log.Fatalf("Failed to initialize Firestore store: %v", err)
		}
		defer fs.Close()
		store = fs
	case "mongo":
		m, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to initialize Mongo store: %v", err)
		}
		defer m.Close(ctx)
		store = m
	case "file":
		f, err := services.NewFileUserService(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		store = f
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want firestore, mongo, or file)", cfg.StoreBackend)
	}

	// Services
	avatarService, err := services.NewAvatarService(cfg.UploadDir, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize avatar service: %v", err)
	}
	profileService := services.NewProfileService(store, avatarService)

	// Handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	avatarHandler := handlers.NewAvatarHandler(avatarService, cfg.MaxUploadSizeMB)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Local-mode identity endpoints. With Firebase configured the
		// client authenticates against Firebase directly instead.
		if authClient == nil {
			accountService, err := services.NewAccountService(cfg.DataDir)
			if err != nil {
				log.Fatalf("Failed to initialize account service: %v", err)
			}
			authHandler := handlers.NewAuthHandler(accountService, cfg.JWTSecret, cfg.JWTExpiration)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		// Protected routes
		r.Group(func(r chi.Router) {
			if authClient != nil {
				r.Use(appMiddleware.FirebaseAuth(authClient))
			} else {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))
			}

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.SubmitProfile)
				r.Patch("/", profileHandler.UpdateProfile)
				r.Get("/age", profileHandler.GetAge)
			})

			r.Post("/avatar", avatarHandler.Upload)
			r.Delete("/avatar/{avatarId}", avatarHandler.Delete)

			r.Delete("/account", profileHandler.DeleteAccount)
		})
	})

	// Serve uploaded avatars
	workDir, _ := os.Getwd()
	filesDir := http.Dir(workDir + "/" + cfg.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesDir)))

	log.Printf("ProfileHub API server starting on %s (store=%s)", cfg.ServerAddress, cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

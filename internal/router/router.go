package router

import (
	"fmt"
	"net/http"
	"time"

	_ "petcare/docs"
	"petcare/internal/adapters/blob/local"
	mem "petcare/internal/adapters/storage/memory"
	"petcare/internal/adapters/storage/sqlstore"
	"petcare/internal/config"
	"petcare/internal/domain/pets"
	"petcare/internal/domain/uploads"
	"petcare/internal/domain/users"
	"petcare/internal/middleware"
	"petcare/internal/platform/logger"
	"petcare/internal/session"
	"petcare/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil = descarta

	// Opcional: si viene, usa SQL (Postgres o SQLite). Si no, in-memory.
	DB *sqlx.DB
	// Opcional: Redis u otro. Si no, in-memory.
	Sessions session.Store
	// Opcional: MinIO u otro. Si no, directorio local UploadDir.
	Blobs uploads.BlobStore

	SessionSecret       []byte
	SessionTTL          time.Duration // 0 = default
	SessionCookieSecure bool

	AdminEmail     string
	PasswordHasher users.PasswordHasher // nil = bcrypt default cost

	UploadDir      string
	UploadMaxBytes int64

	CORSAllowedOrigins []string
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	var (
		userRepo users.Repository
		petRepo  pets.Repository
	)
	if opts.DB != nil {
		userRepo = sqlstore.NewUsersRepo(opts.DB)
		petRepo = sqlstore.NewPetsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo(userRepo)
	}

	sessStore := opts.Sessions
	if sessStore == nil {
		sessStore = mem.NewSessionStore()
	}
	manager, err := session.NewManager(sessStore, session.Config{
		Secret: opts.SessionSecret,
		TTL:    opts.SessionTTL,
		Secure: opts.SessionCookieSecure,
	})
	if err != nil {
		return nil, err
	}

	blobs := opts.Blobs
	if blobs == nil {
		dir := opts.UploadDir
		if dir == "" {
			dir = config.DefaultUploadDir
		}
		ls, err := local.New(dir)
		if err != nil {
			return nil, err
		}
		blobs = ls
	}
	maxBytes := opts.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultUploadMaxBytes
	}

	rs, err := web.NewResponder(manager, log)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	usersSvc := users.NewService(userRepo, users.Options{
		AdminEmail: opts.AdminEmail,
		Hasher:     opts.PasswordHasher,
	})
	petsSvc := pets.NewService(petRepo)
	uploadsSvc := uploads.NewService(blobs)

	// Todo lo que es HTML lleva sesión (flashes incluidos)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(manager, log))
		gate := middleware.RequireIdentity(rs)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			rs.Render(w, r, http.StatusOK, "index.html", nil)
		})

		users.RegisterRoutes(r, usersSvc, rs, petsSvc, gate)
		pets.RegisterRoutes(r, petsSvc, rs, gate)
		uploads.RegisterRoutes(r, uploadsSvc, rs, maxBytes)
	})

	return r, nil
}

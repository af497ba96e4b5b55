package main

import (
	"net/http"

	"collegeerp/internal/auth"
	"collegeerp/internal/config"
	"collegeerp/internal/curriculum"
	"collegeerp/internal/database"
	"collegeerp/internal/entity"
	"collegeerp/internal/handler"
	middleware "collegeerp/internal/midlleware"
	"collegeerp/internal/repository"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	defaultAdminEmail    = "admin@collegeerp.com"
	defaultAdminPassword = "admin123"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	adminRepo := repository.NewAdminRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	classRepo := repository.NewClassRepository(db)

	if err := seedAdmin(adminRepo, logger); err != nil {
		logger.Fatal("admin seeding failed", zap.Error(err))
	}

	directory := repository.NewDirectory(adminRepo, teacherRepo, studentRepo)
	codec := auth.NewTokenCodec([]byte(cfg.SessionSecret), auth.SessionTTL)
	resolver := auth.NewResolver(directory, codec, logger)
	cascade := curriculum.NewResolver(curriculumRepo)

	authHandler := handler.NewAuthHandler(resolver, directory, cfg.Production, logger)
	healthHandler := handler.NewHealthHandler(db)
	subjectHandler := handler.NewSubjectHandler(cascade, curriculumRepo, logger)
	teacherHandler := handler.NewTeacherHandler(teacherRepo, cascade, logger)
	studentHandler := handler.NewStudentHandler(studentRepo, teacherRepo, cascade, logger)
	classHandler := handler.NewClassHandler(classRepo, teacherRepo, studentRepo, logger)

	guard := middleware.RequireAuth(codec, logger)
	adminOnly := middleware.RequireKind("Admin only", entity.KindAdmin)
	teacherOnly := middleware.RequireKind("Teachers only", entity.KindTeacher)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	mux.Handle("GET /api/profile", guard(http.HandlerFunc(authHandler.Profile)))
	mux.Handle("GET /api/branches", guard(http.HandlerFunc(subjectHandler.Branches)))
	mux.Handle("GET /api/subjects/{branch}", guard(http.HandlerFunc(subjectHandler.Cascade)))
	mux.Handle("GET /api/subjects/{branch}/{semester}", guard(http.HandlerFunc(subjectHandler.Cascade)))

	mux.Handle("GET /api/subjects", guard(adminOnly(http.HandlerFunc(subjectHandler.List))))
	mux.Handle("POST /api/subjects", guard(adminOnly(http.HandlerFunc(subjectHandler.Create))))
	mux.Handle("PUT /api/subjects/{id}", guard(adminOnly(http.HandlerFunc(subjectHandler.Update))))
	mux.Handle("DELETE /api/subjects/{id}", guard(adminOnly(http.HandlerFunc(subjectHandler.Delete))))

	mux.Handle("GET /api/teachers", guard(adminOnly(http.HandlerFunc(teacherHandler.List))))
	mux.Handle("POST /api/teachers", guard(adminOnly(http.HandlerFunc(teacherHandler.Create))))
	mux.Handle("PUT /api/teachers/{id}", guard(adminOnly(http.HandlerFunc(teacherHandler.Update))))
	mux.Handle("DELETE /api/teachers/{id}", guard(adminOnly(http.HandlerFunc(teacherHandler.Delete))))

	mux.Handle("GET /api/students", guard(adminOnly(http.HandlerFunc(studentHandler.List))))
	mux.Handle("POST /api/students", guard(adminOnly(http.HandlerFunc(studentHandler.Create))))
	mux.Handle("PUT /api/students/{id}", guard(adminOnly(http.HandlerFunc(studentHandler.Update))))
	mux.Handle("DELETE /api/students/{id}", guard(adminOnly(http.HandlerFunc(studentHandler.Delete))))

	mux.Handle("GET /api/students/teacher", guard(teacherOnly(http.HandlerFunc(studentHandler.ForTeacher))))
	mux.Handle("GET /api/students/teacher/{branch}/{semester}",
		guard(teacherOnly(http.HandlerFunc(studentHandler.ForTeacherSemester))))

	mux.Handle("GET /api/classes", guard(teacherOnly(http.HandlerFunc(classHandler.List))))
	mux.Handle("POST /api/classes", guard(teacherOnly(http.HandlerFunc(classHandler.Create))))
	mux.Handle("POST /api/attendance/{classId}", guard(teacherOnly(http.HandlerFunc(classHandler.Attendance))))
	mux.Handle("POST /api/marks/{classId}", guard(teacherOnly(http.HandlerFunc(classHandler.Marks))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route not found"}`))
	})

	corsWrap := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, corsWrap(mux)); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// seedAdmin creates the default administrator on a fresh database so the
// first login is possible at all.
func seedAdmin(admins *repository.AdminRepository, logger *zap.Logger) error {
	exists, err := admins.HasAdmin()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashSecret(defaultAdminPassword)
	if err != nil {
		return err
	}

	if _, err := admins.Create(defaultAdminEmail, hash); err != nil {
		return err
	}

	logger.Info("default admin created", zap.String("email", defaultAdminEmail))
	return nil
}

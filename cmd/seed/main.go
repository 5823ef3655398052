// Command seed populates an empty database with the demo course catalog and,
// optionally, demo accounts for manual testing.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/evalboard/evalboard/internal/auth"
	"github.com/evalboard/evalboard/internal/repository"
	"github.com/evalboard/evalboard/internal/store"
)

var demoCourses = []repository.CourseCreateParams{
	{Department: "Computer Science", Code: "CS101", Name: "Intro to Computer Science"},
	{Department: "Computer Science", Code: "CS201", Name: "Data Structures"},
	{Department: "Mathematics", Code: "MATH101", Name: "Calculus I"},
	{Department: "Mathematics", Code: "MATH201", Name: "Linear Algebra"},
	{Department: "Physics", Code: "PHYS101", Name: "Physics I"},
}

func main() {
	var (
		dbURL    = flag.String("db", "", "database URL (defaults to DB_URL)")
		accounts = flag.Bool("accounts", false, "also create demo student/lecturer accounts")
		password = flag.String("password", "password123", "password for demo accounts")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	url := *dbURL
	if url == "" {
		url = os.Getenv("DB_URL")
	}
	if url == "" {
		logger.Fatal("database URL required: pass -db or set DB_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, url, store.Options{Logger: logger})
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer st.Close()

	repo := repository.New(st)

	count, err := repo.Courses.Count(ctx)
	if err != nil {
		logger.Fatal("count courses", zap.Error(err))
	}
	if count > 0 {
		logger.Info("courses already present, skipping course seed", zap.Int64("count", count))
	} else {
		for _, params := range demoCourses {
			course, err := repo.Courses.Create(ctx, params)
			if err != nil {
				logger.Fatal("seed course", zap.String("code", params.Code), zap.Error(err))
			}
			logger.Info("seeded course", zap.String("code", course.Code), zap.String("id", course.ID))
		}
	}

	if !*accounts {
		return
	}

	courses, err := repo.Courses.List(ctx)
	if err != nil {
		logger.Fatal("list courses", zap.Error(err))
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal("hash demo password", zap.Error(err))
	}

	csDept := "Computer Science"
	demoUsers := []repository.UserCreateParams{
		{Username: "student1", Password: hashed, Role: "student", Name: "Demo Student"},
		{Username: "lecturer1", Password: hashed, Role: "lecturer", Name: "Demo Lecturer", Department: &csDept},
	}
	if len(courses) > 0 {
		demoUsers[1].CourseID = &courses[0].ID
	}

	for _, params := range demoUsers {
		user, err := repo.Users.Create(ctx, params)
		if err != nil {
			if err == repository.ErrDuplicate {
				logger.Info("demo account already exists", zap.String("username", params.Username))
				continue
			}
			logger.Fatal("seed account", zap.String("username", params.Username), zap.Error(err))
		}
		logger.Info("seeded account", zap.String("username", user.Username), zap.String("role", user.Role))
	}
}

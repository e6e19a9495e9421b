package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wakostech/blog-backend/internal/auth"
	"github.com/wakostech/blog-backend/internal/repository"
	mysqlRepo "github.com/wakostech/blog-backend/internal/repository/mysql"
	redisCache "github.com/wakostech/blog-backend/internal/repository/redis"
	"github.com/wakostech/blog-backend/internal/rest"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
	"github.com/wakostech/blog-backend/internal/storage"
	"github.com/wakostech/blog-backend/internal/usecase/blog"
	"github.com/wakostech/blog-backend/internal/usecase/comment"
	"github.com/wakostech/blog-backend/internal/usecase/engagement"
	"github.com/wakostech/blog-backend/internal/usecase/user"
	"github.com/wakostech/blog-backend/internal/workers"
)

const (
	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultBloomBitSize = 10000000
	defaultUploadDir    = "./uploads"
	dbMaxRetry          = 10
	dbRetryIntervalSec  = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// prepare file storage
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}
	fileStore, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload directory:", err)
	}

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	engagementRepo := mysqlRepo.NewEngagementRepository(db)

	// Blog layers: DB, cache, coordination
	blogDBRepo := mysqlRepo.NewBlogDBRepository(db)
	blogCache := redisCache.NewBlogCache(client)
	blogRepo := repository.NewBlogRepository(blogDBRepo, blogCache, userRepo)

	bloomBitSizeStr := os.Getenv("BLOOM_FILTER_SIZE")
	bloomBitSize, err := strconv.ParseUint(bloomBitSizeStr, 10, 64)
	if err != nil {
		log.Printf("failed to parse bloom bit size, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	bloomRepo := redisCache.NewRedisBloomRepo(client, bloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statsRefresher := workers.NewStatsRefresher(userRepo)
	go statsRefresher.Start(ctx)

	// Build service layer
	jwtSecret := os.Getenv("JWT_SECRET")
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	tokens := auth.NewTokenManager(jwtSecret, time.Duration(jwtTTL)*time.Hour)

	blogSvc := blog.NewService(blogRepo, bloomRepo, fileStore, statsRefresher)
	engagementSvc := engagement.NewService(blogRepo, engagementRepo, statsRefresher)
	commentSvc := comment.NewService(commentRepo, blogRepo, engagementRepo, userRepo, statsRefresher)
	userSvc := user.NewService(userRepo, blogRepo, fileStore, tokens)

	blogHandler := rest.NewBlogHandler(blogSvc, engagementSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	userHandler := rest.NewUserHandler(userSvc)
	uploadHandler := rest.NewUploadHandler(fileStore, userSvc)

	authMiddleware := middleware.Auth(tokens)

	// Prepare bloom filter
	if err := blogSvc.InitBloomFilter(ctx); err != nil {
		log.Printf("failed to init bloom filter: %v\n", err)
		return
	}

	// Register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	route.GET("/blogs", blogHandler.Fetch)
	route.GET("/blogs/popular", blogHandler.FetchPopular)
	route.GET("/blogs/:id", blogHandler.GetByID)
	route.GET("/blogs/:id/comments", commentHandler.FetchByBlog)

	route.GET("/users/:id/profile", userHandler.PublicProfile)
	route.GET("/users/:id/blogs", blogHandler.FetchByUser)

	route.Static("/uploads", fileStore.Dir())

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.POST("/blogs", blogHandler.Store)
		authorized.PUT("/blogs/:id", blogHandler.Update)
		authorized.DELETE("/blogs/:id", blogHandler.Delete)
		authorized.POST("/blogs/:id/like", blogHandler.ToggleLike)
		authorized.POST("/blogs/:id/favorite", blogHandler.ToggleFavorite)
		authorized.GET("/blogs/:id/engagement", blogHandler.EngagementStatus)
		authorized.GET("/me/likes", blogHandler.LikedBlogs)
		authorized.GET("/me/favorites", blogHandler.FavoriteBlogs)

		authorized.POST("/blogs/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/like", commentHandler.ToggleLike)

		authorized.GET("/me", userHandler.Me)
		authorized.PUT("/me/profile", userHandler.UpdateProfile)
		authorized.POST("/me/avatar", uploadHandler.Avatar)
		authorized.POST("/uploads/images", uploadHandler.Image)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}

package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/file_store"
	"github.com/inkwell-blog/inkwell/server"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	"github.com/inkwell-blog/inkwell/utils"
	"github.com/inkwell-blog/inkwell/utils/dotenv"
	"github.com/inkwell-blog/inkwell/utils/flag"
	. "github.com/inkwell-blog/inkwell/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const defaultUploadDir = "uploads"

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Log.Info("api server shutdown")
}

// newUploadStore picks the thumbnail backend: S3 when a bucket is
// configured, local disk otherwise.
func newUploadStore() (file_store.UploadStore, string, error) {
	if bucket := os.Getenv("UPLOAD_S3_BUCKET"); bucket != "" {
		store, err := file_store.NewS3UploadStore(bucket)
		return store, "", err
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = defaultUploadDir
	}
	store, err := file_store.NewLocalUploadStore(dir)
	return store, dir, err
}

func main() {
	defer cleanup()

	flag.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	middlewares.Setup()
	utils.InitTracer()
	utils.InitProfiler()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	uploads, uploadDir, err := newUploadStore()
	if err != nil {
		Log.Fatal("fail to set up upload store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(gintrace.Middleware(flag.ServiceName))

	apiServer := server.NewAPIServer(db, uploads, utils.GetTagCache())
	server.RegisterRoutes(router, apiServer)
	if uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	Log.Info("api server starts up on :", port)
	router.Run(":" + port)
}

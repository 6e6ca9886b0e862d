package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"travelassist_server/config"
	"travelassist_server/routes"
	"travelassist_server/services"
	"travelassist_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Using server port: %s\n", cfg.Port)

	ctx := context.Background()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	store := services.NewDynamoStore(dynamoService)
	log.Println("DynamoDB client initialized.")

	// Socket.IO server carries notifications, nearby updates, and chat events
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()
	broadcaster := &socket.Broadcaster{Server: socketServer}

	// S3-backed photo storage for SOS alerts; optional
	var s3Service *services.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = services.NewS3Service(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("S3_BUCKET not set, SOS photo uploads disabled")
	}

	// Initialize Services
	smsSender := &services.LogSMSSender{}
	profileService := &services.UserProfileService{Users: store}
	matchService := services.NewMatchService(store, cfg.NearbyRadiusKm)
	matchService.OnUpdate = broadcaster.NearbyUpdate
	directionsService := services.NewDirectionsService(cfg.GoogleMapsAPIKey)
	routeService := services.NewRouteService(store, directionsService)
	connectionService := &services.ConnectionService{
		Users:           store,
		Connections:     store,
		Matcher:         matchService,
		Routes:          routeService,
		Notifier:        broadcaster,
		SMS:             smsSender,
		MeetThresholdKm: cfg.MeetThresholdKm,
		MeetDedupWindow: cfg.MeetDedupWindow,
	}
	chatService := &services.ChatService{Messages: store, Notifier: broadcaster}
	chatService.OnMessage = broadcaster.ChatMessage
	sosService := &services.SOSService{Users: store, Photos: s3Service, SMS: smsSender}

	// Background proximity refresh for connected socket clients
	go matchService.StartPolling(ctx, cfg.NearbyPollInterval)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Travel Assist")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, profileService)
	routes.RegisterLocationRoutes(r, profileService, matchService, connectionService, routeService)
	routes.RegisterMatchRoutes(r, matchService, profileService)
	routes.RegisterConnectionRoutes(r, connectionService, routeService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterSOSRoutes(r, sosService)

	// Socket.IO endpoint
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}

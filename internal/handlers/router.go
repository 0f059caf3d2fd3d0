package handlers

import (
	"net/http"

	"github.com/noahfaas/relationship-y/internal/middleware"
	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterDeps carries everything the HTTP surface needs. Tests build it
// around an in-memory database.
type RouterDeps struct {
	Auth        *services.AuthService
	Rooms       *services.RoomService
	Questions   *services.QuestionService
	Answers     *services.AnswerService
	Coordinator *services.RevealCoordinator
	Projections *services.ProjectionService
	Bank        *services.BankService
	Hub         *ws.Hub
}

func NewRouter(deps RouterDeps) *gin.Engine {
	authHandler := NewAuthHandler(deps.Auth)
	roomHandler := NewRoomHandler(deps.Rooms, deps.Questions, deps.Answers)
	questionHandler := NewQuestionHandler(deps.Rooms, deps.Questions, deps.Hub)
	answerHandler := NewAnswerHandler(deps.Answers, deps.Coordinator)
	viewHandler := NewViewHandler(deps.Rooms, deps.Projections)
	bankHandler := NewBankHandler(deps.Bank)
	wsHandler := NewWSHandler(deps.Hub, deps.Rooms)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleWebSocket)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.GET("/:code/qr", roomHandler.RoomQR)
			rooms.GET("/:code/snapshot", roomHandler.Snapshot)
			rooms.GET("/:code/inbox", viewHandler.Inbox)
			rooms.GET("/:code/history", viewHandler.History)
			rooms.POST("/:code/questions", questionHandler.AskQuestion)
			rooms.POST("/:code/questions/random", questionHandler.AskRandomQuestion)
			rooms.GET("/:code/questions/current", questionHandler.CurrentQuestion)
		}

		questions := api.Group("/questions")
		{
			questions.POST("/:id/answers", answerHandler.SubmitAnswer)
			questions.GET("/:id/answers", answerHandler.GetAnswers)
		}

		bank := api.Group("/bank")
		bank.Use(middleware.JWTAuth(deps.Auth))
		{
			bank.GET("", bankHandler.ListPrompts)
			bank.POST("", bankHandler.AddPrompt)
			bank.DELETE("/:id", bankHandler.RemovePrompt)
		}
	}

	return r
}

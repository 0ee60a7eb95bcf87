// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/gorilla/mux"
)

// ETLService описывает операции конвейера, доступные через API.
// Реализуется раннером конвейера.
type ETLService interface {
	// TriggerRun запускает перезагрузку хранилища, если она не идет
	TriggerRun() error

	// Status возвращает текущее состояние конвейера
	Status() (StatusResponse, error)

	// LatestReport возвращает отчет последнего успешного запуска
	LatestReport() (*models.RunReport, error)
}

// SetupRoutes настраивает маршруты операционного API и WebSocket
func SetupRoutes(router *mux.Router, service ETLService, hub *ProgressHub) {
	// Применяем CORS middleware
	router.Use(corsMiddleware)

	// WebSocket-канал прогресса запуска
	router.HandleFunc("/ws/progress", hub.HandleConnections)

	// API конвейера
	router.HandleFunc("/api/etl/status", GetStatusHandler(service)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/etl/report/latest", GetLatestReportHandler(service)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/etl/run", TriggerRunHandler(service)).Methods("POST", "OPTIONS")
}

// corsMiddleware разрешает кросс-доменные запросы к API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

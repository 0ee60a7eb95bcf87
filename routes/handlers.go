// routes/handlers.go
package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
)

// ErrRunInProgress возвращается при попытке запустить перезагрузку,
// когда предыдущая еще не завершилась (конвейер однописательный)
var ErrRunInProgress = errors.New("перезагрузка хранилища уже выполняется")

// StatusResponse структура ответа API о состоянии конвейера
type StatusResponse struct {
	Running bool              `json:"running"`
	LastRun *models.ETLRunLog `json:"lastRun,omitempty"`
}

// TriggerResponse структура ответа API на запуск перезагрузки
type TriggerResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message,omitempty"`
}

// GetStatusHandler обрабатывает запросы состояния конвейера
func GetStatusHandler(service ETLService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := service.Status()
		if err != nil {
			log.Printf("Ошибка при получении состояния конвейера: %v", err)
			http.Error(w, "Не удалось получить состояние конвейера", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

// GetLatestReportHandler обрабатывает запросы отчета последнего запуска
func GetLatestReportHandler(service ETLService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.LatestReport()
		if err != nil {
			log.Printf("Ошибка при получении отчета: %v", err)
			http.Error(w, "Не удалось получить отчет", http.StatusInternalServerError)
			return
		}

		if report == nil {
			http.Error(w, "Отчетов еще нет", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// TriggerRunHandler обрабатывает запросы на запуск перезагрузки хранилища
func TriggerRunHandler(service ETLService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.TriggerRun(); err != nil {
			if errors.Is(err, ErrRunInProgress) {
				writeJSON(w, http.StatusConflict, TriggerResponse{
					Started: false,
					Message: err.Error(),
				})
				return
			}

			log.Printf("Ошибка при запуске перезагрузки: %v", err)
			http.Error(w, "Не удалось запустить перезагрузку", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusAccepted, TriggerResponse{Started: true})
	}
}

// writeJSON сериализует ответ API в JSON
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Ошибка при сериализации ответа: %v", err)
	}
}

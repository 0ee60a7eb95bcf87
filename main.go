// main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/routes"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
)

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "scheduled", "Режим работы: once, scheduled или serve")

	flag.Parse()

	log.Println("Запуск Warehouse Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		runOnce()
	case "scheduled":
		runScheduled(false)
	case "serve":
		runScheduled(true)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled, serve")
		os.Exit(1)
	}

	log.Println("Warehouse Runner завершил работу")
}

// runOnce выполняет одну полную перезагрузку хранилища
func runOnce() {
	runner, err := NewWarehouseRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Warehouse Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteETL(); err != nil {
		log.Fatalf("Ошибка при выполнении перезагрузки: %v", err)
	}
}

// runScheduled запускает перезагрузку по расписанию; в режиме serve
// дополнительно поднимается операционный HTTP API
func runScheduled(serveAPI bool) {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем Warehouse Runner...")
		cancel()
	}()

	runner, err := NewWarehouseRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Warehouse Runner: %v", err)
	}
	defer runner.Close()

	if serveAPI {
		// Настраиваем маршруты операционного API
		router := mux.NewRouter()
		routes.SetupRoutes(router, runner, runner.Hub())

		server := &http.Server{
			Addr:    runner.config.HTTPAddr,
			Handler: router,
		}

		go func() {
			log.Println("Операционный API запущен на", runner.config.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Ошибка HTTP-сервера: %v", err)
			}
		}()

		defer server.Shutdown(context.Background())
	}

	// Запускаем планировщик (блокируется до отмены контекста)
	runner.StartScheduler(ctx)
}

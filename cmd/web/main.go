// @title           Microblog API
// @version         1.0
// @description     Публичное JSON API микроблога: профили пользователей и посты.
// @contact.name    Microblog
// @contact.email   admin@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api/v1

package main

import (
	"os"

	"microblog/internal/app"
	"microblog/internal/logger"

	_ "microblog/docs"
)

func main() {
	if err := app.Run(os.Getenv("CONFIG_PATH")); err != nil {
		logger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

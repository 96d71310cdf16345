package main

import (
	"github.com/sundaymarket/shop_service/config"
	"github.com/sundaymarket/shop_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}

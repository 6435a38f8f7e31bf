package main

import (
	"github.com/cmlabs-hris/washpay-backend/internal/cli"

	_ "time/tzdata"
)

func main() {
	cli.Execute()
}

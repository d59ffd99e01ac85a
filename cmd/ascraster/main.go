// Command ascraster renders ArcInfo ASCII Grid files as images.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gruppe-adler/ascraster/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Root.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}

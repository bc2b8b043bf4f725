package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calehh/dao-app/service"
	"github.com/spf13/cobra"
)

type serveArguments struct {
	Home       string
	ListenAddr string
}

var serveArgs serveArguments

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the DAO client over HTTP",
	Args:  cobra.NoArgs,
	Run:   serveRun,
}

func init() {
	homeFlag(serveCmd, &serveArgs.Home)
	serveCmd.Flags().StringVarP(&serveArgs.ListenAddr, "listen", "l", "", "listen address, overrides service.listen_addr")
}

func serveRun(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	e, err := connect(ctx, serveArgs.Home)
	if err != nil {
		log.Fatalf("connect wallet err %s", err.Error())
	}
	defer e.close()

	listenAddr := e.cfg.Service.ListenAddr
	if serveArgs.ListenAddr != "" {
		listenAddr = serveArgs.ListenAddr
	}
	var history service.History
	if e.indexer != nil {
		history = e.indexer
	}
	svc := service.NewService(listenAddr, e.session, history, e.logger)
	errc := make(chan error, 1)
	go func() {
		errc <- svc.Start()
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("service err %s", err.Error())
		}
		return
	case <-c:
	}

	log.Println("shut down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		e.logger.Error("shutdown service fail", "err", err)
	}
}

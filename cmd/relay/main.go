package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/icecave/relay/cmd"
	"github.com/icecave/relay/frontend"
	"github.com/icecave/relay/health"
	"github.com/icecave/relay/journal"
	"github.com/icecave/relay/proxy"
	"github.com/icecave/relay/proxyprotocol"
	"github.com/icecave/relay/resolver"
	"github.com/icecave/relay/statuspage"
)

var version = "notset"

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	config, err := cmd.GetConfigFromEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, cmd.Usage())
		logger.Fatalln(err)
	}

	handler := &frontend.Handler{
		Forwarder: &proxy.Engine{
			Resolver: upstreamResolver(config),
			Dialer: &proxy.BasicDialer{
				Dialer: &net.Dialer{Timeout: config.ConnectTimeout},
			},
			Timeout: config.UpstreamTimeout,
		},
		Interceptors: []frontend.ConditionalHandler{
			&health.Handler{},
		},
		StatusPages: &statuspage.TemplateWriter{},
		Logger:      logger,
	}

	if config.Journal.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Journal.RedisAddress,
			Password: config.Journal.RedisPassword,
		})
		defer client.Close()

		handler.Journal = &journal.RedisJournal{
			Client: client,
			Key:    config.Journal.Key,
			MaxLen: config.Journal.MaxLen,
		}
		logger.Printf("Recording transactions in Redis at %s", config.Journal.RedisAddress)
	}

	listener, err := net.Listen("tcp", config.ListenAddress())
	if err != nil {
		logger.Fatalln(err)
	}

	if config.ProxyProtocol {
		listener = proxyprotocol.NewListener(listener)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &frontend.Server{
		Handler:    handler,
		Sequential: config.Sequential,
	}

	logger.Printf("Relay %s listening on %s", version, listener.Addr())

	if err := server.Serve(ctx, listener); err != nil {
		logger.Fatalln(err)
	}

	logger.Println("Relay stopped")
}

func upstreamResolver(config *cmd.Config) resolver.Resolver {
	if config.DNS.Server != "" {
		return &resolver.DNSResolver{
			Server:  config.DNS.Server,
			Timeout: config.DNS.Timeout,
		}
	}

	return &resolver.SystemResolver{}
}

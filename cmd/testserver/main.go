// Command testserver runs an HTTP target for pacing runs.
//
// Usage:
//
//	testserver [flags]
//
// Flags:
//
//	-port    Port to listen on (default: 8080)
//	-host    Host to bind to (default: localhost)
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pacesmith/testserver"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	host := flag.String("host", "localhost", "host to bind to")
	flag.Parse()

	server := testserver.NewServer()
	addr := fmt.Sprintf("%s:%d", *host, *port)

	fmt.Println("PaceSmith Test Server")
	fmt.Println("======================")
	fmt.Printf("Listening on http://%s\n\n", addr)
	fmt.Println("Endpoints:")
	fmt.Println("  GET  /health              - Health check")
	fmt.Println("  GET  /delay/{ms}          - Delay response by milliseconds")
	fmt.Println("  GET  /fail-rate           - Fail percentage of requests (?rate=10)")
	fmt.Println("  GET  /stats               - Request count seen so far")
	fmt.Println()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	log.Fatal(http.ListenAndServe(addr, server.Handler()))
}

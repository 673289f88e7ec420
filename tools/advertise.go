//go:build ignore

// Advertise registers a throwaway mDNS service so the browser has
// something to find on a quiet network:
//
//	go run tools/advertise.go
//	go run tools/advertise.go -service _demo._tcp -instance testbox -port 8035
//
// The registration stays up until interrupted.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grandcat/zeroconf"
)

func main() {
	instance := flag.String("instance", "mdns-client-demo", "service instance name")
	service := flag.String("service", "_http._tcp", "DNS-SD service type")
	domain := flag.String("domain", "local.", "browse domain")
	port := flag.Int("port", 8035, "advertised port")
	flag.Parse()

	server, err := zeroconf.Register(*instance, *service, *domain, *port,
		[]string{"txtv=0", "note=mdns-client test service"}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register: %v\n", err)
		os.Exit(1)
	}
	defer server.Shutdown()

	fmt.Printf("Advertising %s.%s%s on port %d, Ctrl+C to stop\n",
		*instance, *service, *domain, *port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nShutting down")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/predatorx7/thoth/pkg/auth"
)

func main() {
	clientID := pflag.String("client", "", "Client ID to issue key for")
	secret := pflag.String("secret", "", "Master secret key (or use AUTH_SECRET env var)")
	endpoint := pflag.String("endpoint", "", "Ingestor URL to embed the key in, e.g. https://collect.example/v1/logs")
	pflag.Parse()

	if *clientID == "" {
		fmt.Println("Usage: apikey-gen --client <clientID> [--secret <secret>] [--endpoint <url>]")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	secretKey := *secret
	if secretKey == "" {
		secretKey = os.Getenv("AUTH_SECRET")
	}
	if secretKey == "" {
		klog.Fatal("Error: Secret is required via --secret flag or AUTH_SECRET env var")
	}

	key := auth.IssueAPIKey(*clientID, []byte(secretKey))
	fmt.Printf("Issued API Key for '%s':\n%s\n", *clientID, key)

	if *endpoint != "" {
		url, err := auth.EndpointWithKey(*endpoint, key)
		if err != nil {
			klog.Fatalf("Error: %v", err)
		}
		fmt.Printf("Forwarder server URL:\n%s\n", url)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type chargePayload struct {
	Event   string `json:"event"`
	Payment struct {
		Object            string  `json:"object"`
		ID                string  `json:"id"`
		Customer          string  `json:"customer"`
		Status            string  `json:"status"`
		Value             float64 `json:"value"`
		ExternalReference string  `json:"externalReference"`
	} `json:"payment"`
}

// Posts an Asaas-shaped charge event to the hook endpoint for manual
// testing. Asaas does not sign webhooks; the endpoint trusts network-level
// restrictions.
func main() {
	url := flag.String("url", "http://localhost:8080/hooks/asaas/charge", "Webhook URL")
	event := flag.String("event", "PAYMENT_CONFIRMED", "Event kind (PAYMENT_RECEIVED, PAYMENT_CONFIRMED, PAYMENT_UPDATED, PAYMENT_DELETED, ...)")
	chargeID := flag.String("charge-id", "pay_"+randomHex(8), "Charge ID")
	cartID := flag.String("cart-id", "", "Cart ID (charge external reference)")
	status := flag.String("status", "CONFIRMED", "Charge status")
	value := flag.Float64("value", 50.0, "Charge value")
	dryRun := flag.Bool("dry-run", false, "Only print the payload, don't send")

	flag.Parse()

	if *cartID == "" {
		fmt.Fprintf(os.Stderr, "Error: -cart-id is required\n")
		os.Exit(1)
	}

	payload := chargePayload{Event: *event}
	payload.Payment.Object = "payment"
	payload.Payment.ID = *chargeID
	payload.Payment.Status = *status
	payload.Payment.Value = *value
	payload.Payment.ExternalReference = *cartID

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest("POST", *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	if len(respBody) > 0 {
		fmt.Printf("Response: %s\n", string(respBody))
	}

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = "0123456789abcdef"[time.Now().UnixNano()%16]
	}
	return string(b)
}

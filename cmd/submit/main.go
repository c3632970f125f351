// Command submit posts the contact form once, the way the page script
// does, and prints what the server answered.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/recaptcha-form/internal/client/form"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "base URL of the form server")
	name := flag.String("name", "", "value of the name field")
	token := flag.String("token", "", "captcha token to attach; omitted when empty")
	action := flag.String("action", "submit", "captcha action label")
	timeout := flag.Duration("timeout", 30*time.Second, "overall request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := form.NewController(*baseURL, form.StaticTokenSource(*token), *action)
	c.RefreshToken(ctx)

	res, err := c.Submit(ctx, *name)
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	if res.Redirected {
		fmt.Printf("accepted: redirected to %s\n", res.Location)
		return
	}
	fmt.Println(res.Message)
	os.Exit(2)
}

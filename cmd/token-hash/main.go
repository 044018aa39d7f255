// Command token-hash emits a bcrypt hash of a gateway token for use as
// AUTOMATION_TOKEN_HASH. The token is read from the first argument or stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var token string
	if len(os.Args) > 1 {
		token = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read token: %v\n", err)
			os.Exit(1)
		}
		token = strings.TrimSpace(line)
	}

	if token == "" {
		fmt.Fprintln(os.Stderr, "empty token")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}

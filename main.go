package main

import "github.com/Kumar-509/voice-ai-frontend/cmd"

func main() {
	cmd.Execute()
}

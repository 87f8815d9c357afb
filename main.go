package main

import "github.com/thereayou/shadow-chat/cmd/server"

func main() {
	s := server.NewServer()
	defer s.Shutdown()

	s.Run()
}

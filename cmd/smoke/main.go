// Command smoke plays one game against a running referee over HTTP and
// prints what the round feed reports.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"rps_referee/internal/domain"
	"rps_referee/internal/service"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := "http://127.0.0.1:" + port

	token, operator := "", ""
	if secret := os.Getenv("AGENT_JWT_SECRET"); secret != "" {
		tokens, err := service.NewAgentTokens(secret, time.Minute)
		if err != nil {
			log.Fatalf("agent tokens: %v", err)
		}
		if token, err = tokens.Generate("smoke"); err != nil {
			log.Fatalf("gen token: %v", err)
		}
		if operator, err = tokens.GenerateScoped("smoke-operator", service.OperatorScope); err != nil {
			log.Fatalf("gen operator token: %v", err)
		}
	}

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws", port), nil)
	if err != nil {
		log.Fatalf("dial feed: %v", err)
	}
	defer conn.Close()

	feed := make(chan string, 16)
	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				close(feed)
				return
			}
			feed <- string(msg)
		}
	}()

	var snap domain.Snapshot
	post(base+"/api/v1/game/new?force=true", operator, nil, &snap)
	log.Printf("new game %s (round limit %d)", snap.GameID, snap.RoundLimit)

	moves := []string{"bomb", "rock", "paper", "scissors", "rock"}
	for i := 0; !snap.GameOver && i < len(moves); i++ {
		var verdict struct {
			Legal  bool   `json:"legal"`
			Reason string `json:"reason"`
		}
		post(base+"/api/v1/tools/validate_move", token, map[string]string{"move": moves[i], "side": "user"}, &verdict)
		if !verdict.Legal {
			log.Printf("round %d: %s rejected (%s)", snap.RoundNumber, moves[i], verdict.Reason)
			continue
		}

		var res service.Resolution
		post(base+"/api/v1/tools/resolve_round", token, map[string]string{"user_move": moves[i]}, &res)
		post(base+"/api/v1/tools/update_game_state", token, map[string]string{
			"user_move": res.UserMove,
			"bot_move":  res.BotMove,
			"outcome":   string(res.Outcome),
		}, &snap)
		log.Printf("round %d: %s vs %s -> %s (%d-%d)", res.Round, res.UserMove, res.BotMove, res.Outcome, snap.UserScore, snap.BotScore)
	}
	log.Printf("game over=%v result=%q", snap.GameOver, snap.Result)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg, ok := <-feed:
			if !ok {
				return
			}
			log.Printf("feed: %s", msg)
		case <-timeout:
			return
		}
	}
}

func post(url, token string, body any, out any) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		log.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		var e struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		log.Fatalf("%s: %d %s (%s)", url, res.StatusCode, e.Error, e.Reason)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Fatalf("%s: decode: %v", url, err)
	}
}

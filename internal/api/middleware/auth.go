// Package middleware общие HTTP middleware: аутентификация агентов
// и сбор метрик запросов.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const agentIDKey contextKey = "agentID"

// HeaderAgentID заголовок с идентификатором агента.
// Аутентификацию выполняет API gateway; до нас доходит уже проверенный ID.
const HeaderAgentID = "X-Agent-ID"

// Auth проверяет наличие корректного X-Agent-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderAgentID)
		if raw == "" {
			respondUnauthorized(w, "отсутствует заголовок "+HeaderAgentID)
			return
		}

		agentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || agentID <= 0 {
			respondUnauthorized(w, "некорректный заголовок "+HeaderAgentID)
			return
		}

		ctx := context.WithValue(r.Context(), agentIDKey, agentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AgentIDFromContext извлекает ID агента, положенный middleware Auth.
// Второе значение false означает, что запрос пришел мимо Auth.
func AgentIDFromContext(ctx context.Context) (int64, bool) {
	agentID, ok := ctx.Value(agentIDKey).(int64)
	return agentID, ok
}

func respondUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

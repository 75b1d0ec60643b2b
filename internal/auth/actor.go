// Package auth переносит личность пользователя, подтверждённую внешним
// identity-gateway, из транспорта в контекст запроса.
package auth

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Заголовки HTTP и ключи gRPC metadata, которые проставляет gateway.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	MetadataActorID   = "x-actor-id"
	MetadataActorRole = "x-actor-role"
)

type actorKey struct{}

// WithActor кладёт пользователя в контекст.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext достаёт пользователя; ok=false, если личность не передана.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok || !actor.Valid() {
		return domain.Actor{}, false
	}
	return actor, true
}

// FromRequest читает пользователя из заголовков HTTP-запроса.
func FromRequest(r *http.Request) domain.Actor {
	return domain.Actor{
		ID:   strings.TrimSpace(r.Header.Get(HeaderActorID)),
		Role: strings.TrimSpace(r.Header.Get(HeaderActorRole)),
	}
}

// FromIncomingMetadata читает пользователя из входящей gRPC metadata.
func FromIncomingMetadata(ctx context.Context) domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return domain.Actor{}
	}
	return domain.Actor{
		ID:   firstValue(md, MetadataActorID),
		Role: firstValue(md, MetadataActorRole),
	}
}

// AppendToOutgoing добавляет личность пользователя в исходящую metadata клиента.
func AppendToOutgoing(ctx context.Context, actor domain.Actor) context.Context {
	pairs := []string{MetadataActorID, actor.ID}
	if actor.Role != "" {
		pairs = append(pairs, MetadataActorRole, actor.Role)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

func firstValue(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

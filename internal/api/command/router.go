package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/auth"
	"github.com/spec-kit/project-tracker/internal/domain"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// ErrUnknownCommand marks a record whose kind has no route. It never
// reaches the output.
var ErrUnknownCommand = errors.New("unknown command")

// Handler executes one command for the principal stored on ctx. A nil
// result with a nil error means the command succeeded silently.
type Handler func(ctx context.Context, cmd dto.Command) (*dto.Result, error)

// Middleware decorates a Handler.
type Middleware func(next Handler) Handler

type route struct {
	roles   []domain.Role
	handler Handler
}

// Router is the dispatch table kind -> permitted roles -> handler.
type Router struct {
	resolver    *auth.Resolver
	routes      map[dto.Kind]route
	middlewares []Middleware
}

// NewRouter creates an empty router resolving users through resolver.
func NewRouter(resolver *auth.Resolver) *Router {
	return &Router{resolver: resolver, routes: make(map[dto.Kind]route)}
}

// Use appends middlewares; the first one added is the outermost.
func (r *Router) Use(mw ...Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// Register binds kind to handler. Roles are kept in the given order, which
// is the order the permission error lists them in.
func (r *Router) Register(kind dto.Kind, roles []domain.Role, handler Handler) {
	r.routes[kind] = route{roles: append([]domain.Role(nil), roles...), handler: handler}
}

// Dispatch runs cmd and returns its result, or nil when the command yields
// none.
func (r *Router) Dispatch(ctx context.Context, cmd dto.Command) *dto.Result {
	h := r.serve
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	result, err := h(ctx, cmd)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return nil
	case err != nil:
		return dto.ErrorResult(cmd, apperrors.ToDomainError(err).Message)
	}
	return result
}

// serve resolves the acting user before looking up the route, so an unknown
// user is reported even for an unknown command.
func (r *Router) serve(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	user, err := r.resolver.Resolve(cmd.Username)
	if err != nil {
		return nil, err
	}
	rt, ok := r.routes[cmd.Kind]
	if !ok {
		return nil, ErrUnknownCommand
	}
	if err := auth.RequireRole(user, rt.roles...); err != nil {
		return nil, err
	}
	if cmd.PayloadErr != nil {
		return nil, apperrors.NewDomainError(apperrors.CodeValidation,
			fmt.Sprintf("Malformed fields in command %s.", cmd.Kind),
			map[string]any{"cause": cmd.PayloadErr.Error()})
	}
	return rt.handler(auth.WithPrincipal(ctx, user), cmd)
}

// principal returns the acting user set by the router.
func principal(ctx context.Context) *domain.User {
	user, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		panic("command: handler invoked without a principal")
	}
	return user
}

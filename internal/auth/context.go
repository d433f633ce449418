package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxAnalystID ctxKey = iota
	ctxWorkspaceID
	ctxRole
)

func WithIdentity(ctx context.Context, analystID, workspaceID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxAnalystID, analystID)
	ctx = context.WithValue(ctx, ctxWorkspaceID, workspaceID)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func AnalystID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxAnalystID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("analyst_id not in context")
}

func WorkspaceID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxWorkspaceID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("workspace_id not in context")
}

func Role(ctx context.Context) (string, error) {
	v := ctx.Value(ctxRole)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role not in context")
}

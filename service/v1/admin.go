package service

import (
	"context"

	"github.com/streakbeast/beastcore/service/svc"
	types "github.com/streakbeast/beastcore/types/v1"
)

// SetAgent rotates the verification agent. Owner-gated; takes effect for the
// very next check-in.
func SetAgent(ctx context.Context, s *svc.ServerCtx, req types.SetAgentReq) (*types.SetAgentResp, error) {
	caller, err := svc.ParseAddress(req.Caller)
	if err != nil {
		return nil, err
	}
	newAgent, err := svc.ParseAddress(req.NewAgent)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.SetAgent(caller, newAgent); err != nil {
		return nil, err
	}
	mirrorMeta(ctx, s)
	return &types.SetAgentResp{Agent: newAgent.Hex()}, nil
}

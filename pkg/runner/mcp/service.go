// Package mcp provides the Model Context Protocol server integration for
// promptdock.
package mcp

import (
	"context"
	"errors"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/node"
)

// Service adapts the session service to transport-friendly DTOs shared by
// the MCP tools and resources.
type Service struct {
	App *app.Service
}

// NodeDTO is a transport-friendly projection of a node. Children are only
// filled for tree listings.
type NodeDTO struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    string     `json:"title"`
	Path     []string   `json:"path,omitempty"`
	ParentID string     `json:"parentId,omitempty"`
	Favorite bool       `json:"favorite"`
	Content  *string    `json:"content,omitempty"`
	Items    []*NodeDTO `json:"items,omitempty"`
	Count    int        `json:"count,omitempty"`
}

// AddOptions captures the parameters used to create a folder or prompt.
type AddOptions struct {
	ParentID string
	Title    string
	Content  string
	Index    int
}

// NewService builds a service wrapper around the session service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("service is not configured")
	}
	return nil
}

// Tree returns the whole tree with favorite flags.
func (s *Service) Tree(ctx context.Context) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	root, err := s.App.Tree(ctx)
	if err != nil {
		return nil, err
	}
	favs, err := s.favoriteSet(ctx)
	if err != nil {
		return nil, err
	}
	return toTreeDTO(root, favs), nil
}

// Node returns one node with its path; folders list their direct children.
func (s *Service) Node(ctx context.Context, id string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	it, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(it.Node, it.Favorite)
	dto.Path = it.Path
	dto.ParentID = it.ParentID
	if it.Node.IsFolder() {
		favs, err := s.favoriteSet(ctx)
		if err != nil {
			return nil, err
		}
		for _, child := range it.Node.Items {
			dto.Items = append(dto.Items, toDTO(child, favs[child.ID]))
		}
	}
	return dto, nil
}

func (s *Service) AddFolder(ctx context.Context, opts AddOptions) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n, err := s.App.AddFolder(ctx, opts.ParentID, opts.Title, opts.Index)
	if err != nil {
		return nil, err
	}
	return s.Node(ctx, n.ID)
}

func (s *Service) AddPrompt(ctx context.Context, opts AddOptions) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n, err := s.App.AddPrompt(ctx, opts.ParentID, opts.Title, opts.Content, opts.Index)
	if err != nil {
		return nil, err
	}
	return s.Node(ctx, n.ID)
}

func (s *Service) Rename(ctx context.Context, id, title string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.App.Rename(ctx, id, title); err != nil {
		return nil, err
	}
	return s.Node(ctx, id)
}

func (s *Service) SetContent(ctx context.Context, id, content string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.App.SetContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.Node(ctx, id)
}

func (s *Service) Move(ctx context.Context, id, target string, index int) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.App.Move(ctx, id, target, index); err != nil {
		return nil, err
	}
	return s.Node(ctx, id)
}

func (s *Service) Combine(ctx context.Context, a, b, title string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	folder, err := s.App.Combine(ctx, a, b, title)
	if err != nil {
		return nil, err
	}
	return s.Node(ctx, folder.ID)
}

func (s *Service) Reorder(ctx context.Context, parentID string, from, to int) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.App.Reorder(ctx, parentID, from, to); err != nil {
		return nil, err
	}
	if parentID == "" {
		var err error
		if parentID, err = s.App.RootID(ctx); err != nil {
			return nil, err
		}
	}
	return s.Node(ctx, parentID)
}

// Remove deletes id and returns the removed subtree.
func (s *Service) Remove(ctx context.Context, id string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	removed, err := s.App.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTreeDTO(removed, nil), nil
}

// ToggleFavorite flips the favorite state of a prompt.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.App.ToggleFavorite(ctx, id); err != nil {
		return nil, err
	}
	return s.Node(ctx, id)
}

// Favorites lists the favorite prompts in display order.
func (s *Service) Favorites(ctx context.Context) ([]*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	prompts, err := s.App.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*NodeDTO, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, toDTO(p, true))
	}
	return out, nil
}

func (s *Service) favoriteSet(ctx context.Context) (map[string]bool, error) {
	prompts, err := s.App.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(prompts))
	for _, p := range prompts {
		set[p.ID] = true
	}
	return set, nil
}

func toDTO(n *node.Node, favorite bool) *NodeDTO {
	dto := &NodeDTO{
		ID:       n.ID,
		Type:     string(n.Kind),
		Title:    n.Title,
		Favorite: favorite,
	}
	if n.IsPrompt() {
		content := n.Content
		dto.Content = &content
	} else {
		dto.Count = len(n.Items)
	}
	return dto
}

func toTreeDTO(n *node.Node, favs map[string]bool) *NodeDTO {
	dto := toDTO(n, favs[n.ID])
	for _, child := range n.Items {
		dto.Items = append(dto.Items, toTreeDTO(child, favs))
	}
	return dto
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service, defaultTitle string) {
	registerListTreeTool(srv, svc)
	registerGetPromptTool(srv, svc)
	registerAddFolderTool(srv, svc)
	registerAddPromptTool(srv, svc)
	registerRenameTool(srv, svc)
	registerSetContentTool(srv, svc)
	registerMoveTool(srv, svc)
	registerCombineTool(srv, svc, defaultTitle)
	registerRemoveTool(srv, svc)
	registerReorderTool(srv, svc)
	registerToggleFavoriteTool(srv, svc)
	registerListFavoritesTool(srv, svc)
}

func withIndex(description string) mcp.ToolOption {
	return mcp.WithNumber("index", mcp.Description(description))
}

// indexOrAppend maps an absent index to append.
func indexOrAppend(i *int) int {
	if i == nil {
		return -1
	}
	return *i
}

func registerListTreeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tree",
		mcp.WithDescription("Return the whole folder and prompt tree."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Tree(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetPromptTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_prompt",
		mcp.WithDescription("Get a prompt's content, or a folder's direct children, by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Node(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddFolderTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_folder",
		mcp.WithDescription("Create an empty folder."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Folder title."),
		),
		mcp.WithString("parent_id",
			mcp.Description("Folder that should hold the new folder. Defaults to the root."),
		),
		withIndex("Position among the parent's items. Omit to append."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title    string `json:"title"`
			ParentID string `json:"parent_id"`
			Index    *int   `json:"index"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddFolder(ctx, AddOptions{
			ParentID: args.ParentID,
			Title:    args.Title,
			Index:    indexOrAppend(args.Index),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddPromptTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_prompt",
		mcp.WithDescription("Create a prompt."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Prompt title."),
		),
		mcp.WithString("content",
			mcp.Description("Prompt body. May be empty."),
		),
		mcp.WithString("parent_id",
			mcp.Description("Folder that should hold the new prompt. Defaults to the root."),
		),
		withIndex("Position among the parent's items. Omit to append."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			ParentID string `json:"parent_id"`
			Index    *int   `json:"index"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddPrompt(ctx, AddOptions{
			ParentID: args.ParentID,
			Title:    args.Title,
			Content:  args.Content,
			Index:    indexOrAppend(args.Index),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRenameTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rename_node",
		mcp.WithDescription("Rename a folder or prompt."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New title. Surrounding whitespace is trimmed; it may not be empty."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Rename(ctx, id, title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetContentTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_content",
		mcp.WithDescription("Replace the body of a prompt."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Prompt identifier."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("New prompt body."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SetContent(ctx, args.ID, args.Content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_node",
		mcp.WithDescription("Move a node into a folder. A folder cannot be moved into itself or its descendants."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node to move."),
		),
		mcp.WithString("target_id",
			mcp.Required(),
			mcp.Description("Destination folder."),
		),
		withIndex("Position in the destination after the node is removed from its old place. Omit to append."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID       string `json:"id"`
			TargetID string `json:"target_id"`
			Index    *int   `json:"index"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Move(ctx, args.ID, args.TargetID, indexOrAppend(args.Index))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCombineTool(srv *server.MCPServer, svc *Service, defaultTitle string) {
	tool := mcp.NewTool(
		"combine_nodes",
		mcp.WithDescription("Wrap two sibling nodes in a new folder placed where the first of them was."),
		mcp.WithString("a",
			mcp.Required(),
			mcp.Description("First sibling."),
		),
		mcp.WithString("b",
			mcp.Required(),
			mcp.Description("Second sibling."),
		),
		mcp.WithString("title",
			mcp.Description(fmt.Sprintf("Title of the new folder. Defaults to %q.", defaultTitle)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			A     string `json:"a"`
			B     string `json:"b"`
			Title string `json:"title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Title == "" {
			args.Title = defaultTitle
		}

		dto, err := svc.Combine(ctx, args.A, args.B, args.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRemoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_node",
		mcp.WithDescription("Delete a node and everything under it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Remove(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"removed": dto})
	})
}

func registerReorderTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reorder_node",
		mcp.WithDescription("Move a child to another position within the same folder."),
		mcp.WithString("parent_id",
			mcp.Description("Folder whose items are reordered. Defaults to the root."),
		),
		mcp.WithNumber("from",
			mcp.Required(),
			mcp.Description("Current position."),
		),
		mcp.WithNumber("to",
			mcp.Required(),
			mcp.Description("New position."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ParentID string `json:"parent_id"`
			From     int    `json:"from"`
			To       int    `json:"to"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Reorder(ctx, args.ParentID, args.From, args.To)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleFavoriteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_favorite",
		mcp.WithDescription("Add a prompt to favorites, or remove it when it already is one."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Prompt identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleFavorite(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListFavoritesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_favorites",
		mcp.WithDescription("List favorite prompts in display order."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		favs, err := svc.Favorites(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"favorites": favs,
			"count":     len(favs),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

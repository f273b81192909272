// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termview shows a rug in a terminal and lets the user wear it.
//
// Rendering goes through the normal orchestrator. The terminal backend is
// a surface registered under Backend: it draws into an offscreen image and,
// on Flush, scales that image onto the screen using upper half-block cells,
// two pixels per cell.
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	defer screen.Fini()
//
//	v, err := termview.NewViewer(screen, cfg, params)
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//	return v.Run(ctx)
//
// # Keys
//
//	d / D   dirt up / down
//	t / T   texture up / down
//	f / F   next / previous frame
//	c       clean: reset all wear
//	q, Esc  quit
package termview

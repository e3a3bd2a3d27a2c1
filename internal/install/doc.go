// SPDX-License-Identifier: MPL-2.0

// Package install orchestrates an end-to-end mod install: fetch the root
// project, select its newest compatible version, resolve the required
// dependency closure, then download the main artifact and every dependency
// file.
//
// Failure policy follows a strict split: root-level problems (project not
// found, no compatible version, no main artifact, main download failure)
// abort the install with a *FatalError; per-dependency problems are recorded
// in the Result and logged, but never fail the run.
package install

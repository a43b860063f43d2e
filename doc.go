// Package callpoint hosts action callbacks for a network orchestration
// platform.
//
// A handler implements types.Handler and is bound to a named call point;
// the host runs its Init hook once at registration and routes every action
// request for that call point to Invoke:
//
//	srv, _ := callpoint.New(ctx)
//	out, err := srv.Invoke(ctx, nil, "test-java-actionpoint", "selftest", nil, nil)
//	// out: [testpkg-java:message=Hello world from Java]
//
// Handler failures reach the caller as a single *types.CallbackError that
// wraps the cause.
package callpoint

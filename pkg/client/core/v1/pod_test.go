package v1

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/nanokube/kubeclient/pkg/api/errors"
	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/rest"
	"github.com/nanokube/kubeclient/pkg/util/clock"
)

func newTestClient(t *testing.T, s *fakeAPIServer) *CoreV1Client {
	t.Helper()
	client, err := NewForConfig(&rest.Config{Host: s.server.URL})
	require.NoError(t, err)
	return client
}

func newPod(name string) *meta.Pod {
	pod := &meta.Pod{}
	pod.Name = name
	pod.Spec = &meta.PodSpec{Containers: []meta.Container{{Name: "app", Image: "nginx:1.25"}}}
	return pod
}

func TestPodCreateGetDelete(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	created, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "web-0", created.Name)
	assert.Equal(t, "default", created.Namespace)
	assert.NotEmpty(t, created.UID, "server assigns a uid on create")
	assert.NotEmpty(t, created.ResourceVersion)

	got, err := client.Pods("default").Get(ctx, "web-0", meta.GetOptions{})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(created, got), "get must return the object exactly as created")

	status, err := client.Pods("default").Delete(ctx, "web-0", meta.DeleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, meta.StatusSuccess, status.Status)

	_, err = client.Pods("default").Get(ctx, "web-0", meta.GetOptions{})
	assert.True(t, apierrors.IsNotFound(err), "expected NotFound after delete, got %v", err)
}

func TestPodCreateAlreadyExists(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	_, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)

	_, err = client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	assert.True(t, apierrors.IsAlreadyExists(err), "expected AlreadyExists, got %v", err)
}

func TestPodUpdateConflictOnStaleResourceVersion(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	created, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)

	// first writer wins
	created.Spec.Containers[0].Image = "nginx:1.26"
	updated, err := client.Pods("default").Update(ctx, created, meta.UpdateOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, created.ResourceVersion, updated.ResourceVersion)

	// second writer carries the stale version and loses
	created.Spec.Containers[0].Image = "nginx:1.27"
	_, err = client.Pods("default").Update(ctx, created, meta.UpdateOptions{})
	assert.True(t, apierrors.IsConflict(err), "expected Conflict, got %v", err)
}

func TestPodPatch(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	_, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)

	patch := []byte(`[{"op":"replace","path":"/spec/containers/0/image","value":"nginx:1.26"}]`)
	patched, err := client.Pods("default").Patch(ctx, "web-0", meta.JSONPatchType, patch, meta.PatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "nginx:1.26", patched.Spec.Containers[0].Image)

	merge := []byte(`{"metadata":{"labels":{"app":"web"}}}`)
	patched, err = client.Pods("default").Patch(ctx, "web-0", meta.MergePatchType, merge, meta.PatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "web", patched.Labels["app"])
	assert.Equal(t, "nginx:1.26", patched.Spec.Containers[0].Image, "merge patch keeps earlier changes")
}

func TestPodListPagination(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := client.Pods("default").Create(ctx, newPod(name), meta.CreateOptions{})
		require.NoError(t, err)
	}

	page, err := client.Pods("default").List(ctx, meta.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotEmpty(t, page.Continue)

	var names []string
	for _, item := range page.Items {
		names = append(names, item.Name)
	}
	for page.Continue != "" {
		page, err = client.Pods("default").List(ctx, meta.ListOptions{Limit: 2, Continue: page.Continue})
		require.NoError(t, err)
		for _, item := range page.Items {
			names = append(names, item.Name)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
}

func TestPodEmptyNamespaceRejectedClientSide(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)

	_, err := client.Pods("").Get(context.Background(), "web-0", meta.GetOptions{})
	assert.True(t, apierrors.IsNotFound(err), "expected NotFound, got %v", err)
}

func TestPodGetLogs(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	_, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)
	server.setLog("default", "web-0", "starting server\nlistening on :8080\n")

	body, err := client.Pods("default").GetLogs("web-0", &meta.PodLogOptions{}).Stream(ctx)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "starting server\nlistening on :8080\n", string(data))
}

// steppingClock advances a FakeClock whenever the poll loop parks on a timer.
func steppingClock(t *testing.T, fc *clock.FakeClock) func() {
	t.Helper()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if fc.HasWaiters() {
				fc.Step(time.Second)
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

func TestPodWaitUntilReady(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	fc := clock.NewFakeClock(time.Now())
	client.clock = fc
	defer steppingClock(t, fc)()
	ctx := context.Background()

	created, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)

	// flip the pod to ready after the first poll has had a chance to miss
	go func() {
		time.Sleep(50 * time.Millisecond)
		created.Status = &meta.PodStatus{
			Phase:             meta.PodRunning,
			ContainerStatuses: []meta.ContainerStatus{{Name: "app", Ready: true}},
		}
		created.ResourceVersion = ""
		_, _ = client.Pods("default").Update(context.Background(), created, meta.UpdateOptions{})
	}()

	pod, err := client.Pods("default").WaitUntilReady(ctx, "web-0", time.Minute)
	require.NoError(t, err)
	assert.True(t, PodReady(pod))
}

func TestPodWaitUntilReadyTimesOut(t *testing.T) {
	server := newFakeAPIServer(t)
	client := newTestClient(t, server)
	fc := clock.NewFakeClock(time.Now())
	client.clock = fc
	defer steppingClock(t, fc)()
	ctx := context.Background()

	_, err := client.Pods("default").Create(ctx, newPod("web-0"), meta.CreateOptions{})
	require.NoError(t, err)

	_, err = client.Pods("default").WaitUntilReady(ctx, "web-0", 3*time.Second)
	require.Error(t, err)
	var timeoutErr *apierrors.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

package v1

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/nanokube/kubeclient/pkg/api/meta"
)

// fakeAPIServer is a minimal in-memory apiserver for the core v1 routes the
// client exercises: pod CRUD plus the log subresource. Objects are stored as
// raw JSON so patches apply byte-for-byte the way a real server would.
type fakeAPIServer struct {
	mu         sync.Mutex
	rv         int
	pods       map[string][]byte // key: namespace/name
	order      []string
	logs       map[string]string
	namespaces map[string]*meta.Namespace
	configMaps map[string]*meta.ConfigMap // key: namespace/name
	server     *httptest.Server
}

func newFakeAPIServer(t *testing.T) *fakeAPIServer {
	s := &fakeAPIServer{
		pods:       make(map[string][]byte),
		logs:       make(map[string]string),
		namespaces: make(map[string]*meta.Namespace),
		configMaps: make(map[string]*meta.ConfigMap),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods", s.createPod).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods", s.listPods).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods/{name}", s.getPod).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods/{name}", s.updatePod).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods/{name}", s.patchPod).Methods(http.MethodPatch)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods/{name}", s.deletePod).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/namespaces/{namespace}/pods/{name}/log", s.podLog).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/namespaces/{namespace}/configmaps", s.createConfigMap).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/namespaces/{namespace}/configmaps/{name}", s.getConfigMap).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/namespaces", s.createNamespace).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/namespaces/{name}", s.getNamespace).Methods(http.MethodGet)

	s.server = httptest.NewServer(r)
	t.Cleanup(s.server.Close)
	return s
}

func (s *fakeAPIServer) nextRV() string {
	s.rv++
	return strconv.Itoa(s.rv)
}

func writeJSON(w http.ResponseWriter, code int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	data, _ := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(obj)
	w.Write(data)
}

func writeStatusError(w http.ResponseWriter, code int, reason meta.StatusReason, format string, args ...interface{}) {
	writeJSON(w, code, &meta.Status{
		TypeMeta: meta.TypeMeta{Kind: "Status", APIVersion: "v1"},
		Status:   meta.StatusFailure,
		Reason:   reason,
		Message:  fmt.Sprintf(format, args...),
		Code:     int32(code),
	})
}

func (s *fakeAPIServer) createPod(w http.ResponseWriter, req *http.Request) {
	ns := mux.Vars(req)["namespace"]
	body, _ := io.ReadAll(req.Body)

	pod := &meta.Pod{}
	if err := jsoniter.Unmarshal(body, pod); err != nil {
		writeStatusError(w, http.StatusBadRequest, meta.StatusReasonBadRequest, "unable to parse body: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := ns + "/" + pod.Name
	if _, exists := s.pods[key]; exists {
		writeStatusError(w, http.StatusConflict, meta.StatusReasonAlreadyExists, "pods %q already exists", pod.Name)
		return
	}
	pod.Kind = "Pod"
	pod.APIVersion = "v1"
	pod.Namespace = ns
	pod.UID = uuid.NewString()
	pod.ResourceVersion = s.nextRV()

	data, _ := jsoniter.Marshal(pod)
	s.pods[key] = data
	s.order = append(s.order, key)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)
}

func (s *fakeAPIServer) getPod(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	s.mu.Lock()
	data, ok := s.pods[vars["namespace"]+"/"+vars["name"]]
	s.mu.Unlock()
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "pods %q not found", vars["name"])
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *fakeAPIServer) updatePod(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	body, _ := io.ReadAll(req.Body)

	pod := &meta.Pod{}
	if err := jsoniter.Unmarshal(body, pod); err != nil {
		writeStatusError(w, http.StatusBadRequest, meta.StatusReasonBadRequest, "unable to parse body: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := vars["namespace"] + "/" + vars["name"]
	stored, ok := s.pods[key]
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "pods %q not found", vars["name"])
		return
	}
	current := &meta.Pod{}
	_ = jsoniter.Unmarshal(stored, current)
	if pod.ResourceVersion != "" && pod.ResourceVersion != current.ResourceVersion {
		writeStatusError(w, http.StatusConflict, meta.StatusReasonConflict,
			"the object has been modified; please apply your changes to the latest version and try again")
		return
	}
	pod.Kind = "Pod"
	pod.APIVersion = "v1"
	pod.Namespace = vars["namespace"]
	pod.UID = current.UID
	pod.ResourceVersion = s.nextRV()

	data, _ := jsoniter.Marshal(pod)
	s.pods[key] = data
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *fakeAPIServer) patchPod(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	body, _ := io.ReadAll(req.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	key := vars["namespace"] + "/" + vars["name"]
	stored, ok := s.pods[key]
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "pods %q not found", vars["name"])
		return
	}

	var patched []byte
	var err error
	switch req.Header.Get("Content-Type") {
	case meta.JSONPatchType:
		var patch jsonpatch.Patch
		patch, err = jsonpatch.DecodePatch(body)
		if err == nil {
			patched, err = patch.Apply(stored)
		}
	case meta.MergePatchType, meta.StrategicMergePatchType:
		patched, err = jsonpatch.MergePatch(stored, body)
	default:
		writeStatusError(w, http.StatusUnsupportedMediaType, meta.StatusReasonBadRequest,
			"unsupported patch type %q", req.Header.Get("Content-Type"))
		return
	}
	if err != nil {
		writeStatusError(w, http.StatusBadRequest, meta.StatusReasonBadRequest, "unable to apply patch: %v", err)
		return
	}

	pod := &meta.Pod{}
	_ = jsoniter.Unmarshal(patched, pod)
	pod.ResourceVersion = s.nextRV()
	data, _ := jsoniter.Marshal(pod)
	s.pods[key] = data
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *fakeAPIServer) deletePod(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := vars["namespace"] + "/" + vars["name"]
	if _, ok := s.pods[key]; !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "pods %q not found", vars["name"])
		return
	}
	delete(s.pods, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, &meta.Status{
		TypeMeta: meta.TypeMeta{Kind: "Status", APIVersion: "v1"},
		Status:   meta.StatusSuccess,
	})
}

// listPods pages through pods in creation order. The continue token is the
// index of the next item, which is all an opaque token needs to be here.
func (s *fakeAPIServer) listPods(w http.ResponseWriter, req *http.Request) {
	ns := mux.Vars(req)["namespace"]
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for _, key := range s.order {
		if pod, ok := s.pods[key]; ok {
			var probe meta.Pod
			_ = jsoniter.Unmarshal(pod, &probe)
			if probe.Namespace == ns {
				keys = append(keys, key)
			}
		}
	}

	start := 0
	if token := req.URL.Query().Get("continue"); token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := len(keys)
	if limit, _ := strconv.Atoi(req.URL.Query().Get("limit")); limit > 0 && start+limit < end {
		end = start + limit
	}

	list := &meta.PodList{
		TypeMeta: meta.TypeMeta{Kind: "PodList", APIVersion: "v1"},
		ListMeta: meta.ListMeta{ResourceVersion: strconv.Itoa(s.rv)},
	}
	for _, key := range keys[start:end] {
		var pod meta.Pod
		_ = jsoniter.Unmarshal(s.pods[key], &pod)
		list.Items = append(list.Items, pod)
	}
	if end < len(keys) {
		list.Continue = strconv.Itoa(end)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *fakeAPIServer) podLog(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	s.mu.Lock()
	log, ok := s.logs[vars["namespace"]+"/"+vars["name"]]
	s.mu.Unlock()
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "pods %q not found", vars["name"])
		return
	}
	if tail := req.URL.Query().Get("tailLines"); tail != "" {
		// recorded per test, tailLines only checked for presence
		w.Header().Set("X-Tail-Lines", tail)
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, log)
}

func (s *fakeAPIServer) createNamespace(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	ns := &meta.Namespace{}
	if err := jsoniter.Unmarshal(body, ns); err != nil {
		writeStatusError(w, http.StatusBadRequest, meta.StatusReasonBadRequest, "unable to parse body: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.namespaces[ns.Name]; exists {
		writeStatusError(w, http.StatusConflict, meta.StatusReasonAlreadyExists, "namespaces %q already exists", ns.Name)
		return
	}
	ns.Kind = "Namespace"
	ns.APIVersion = "v1"
	ns.UID = uuid.NewString()
	ns.ResourceVersion = s.nextRV()
	if ns.Status == nil {
		// namespaces begin life terminating-free but not yet active
		ns.Status = &meta.NamespaceStatus{}
	}
	s.namespaces[ns.Name] = ns
	writeJSON(w, http.StatusCreated, ns)
}

func (s *fakeAPIServer) getNamespace(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	s.mu.Lock()
	ns, ok := s.namespaces[name]
	s.mu.Unlock()
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "namespaces %q not found", name)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *fakeAPIServer) setNamespacePhase(name string, phase meta.NamespacePhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok := s.namespaces[name]; ok {
		ns.Status = &meta.NamespaceStatus{Phase: phase}
		ns.ResourceVersion = s.nextRV()
	}
}

func (s *fakeAPIServer) createConfigMap(w http.ResponseWriter, req *http.Request) {
	namespace := mux.Vars(req)["namespace"]
	body, _ := io.ReadAll(req.Body)
	cm := &meta.ConfigMap{}
	if err := jsoniter.Unmarshal(body, cm); err != nil {
		writeStatusError(w, http.StatusBadRequest, meta.StatusReasonBadRequest, "unable to parse body: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := namespace + "/" + cm.Name
	if _, exists := s.configMaps[key]; exists {
		writeStatusError(w, http.StatusConflict, meta.StatusReasonAlreadyExists, "configmaps %q already exists", cm.Name)
		return
	}
	cm.Kind = "ConfigMap"
	cm.APIVersion = "v1"
	cm.Namespace = namespace
	cm.UID = uuid.NewString()
	cm.ResourceVersion = s.nextRV()
	s.configMaps[key] = cm
	writeJSON(w, http.StatusCreated, cm)
}

func (s *fakeAPIServer) getConfigMap(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	s.mu.Lock()
	cm, ok := s.configMaps[vars["namespace"]+"/"+vars["name"]]
	s.mu.Unlock()
	if !ok {
		writeStatusError(w, http.StatusNotFound, meta.StatusReasonNotFound, "configmaps %q not found", vars["name"])
		return
	}
	writeJSON(w, http.StatusOK, cm)
}

func (s *fakeAPIServer) setLog(namespace, name, log string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[namespace+"/"+name] = log
}

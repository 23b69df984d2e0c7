package metrics

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemMetrics is a singleton that collects host and runtime metrics
type SystemMetrics struct {
	systemCPUUsage    *prometheus.GaugeVec
	systemMemoryUsage *prometheus.GaugeVec

	goGoroutines prometheus.Gauge
	goHeapAlloc  prometheus.Gauge
	goHeapSys    prometheus.Gauge

	registry *prometheus.Registry

	initialized bool
	mu          sync.RWMutex
}

var (
	instance *SystemMetrics
	once     sync.Once
)

// GetInstance returns the singleton instance of SystemMetrics
func GetInstance() *SystemMetrics {
	once.Do(func() {
		instance = &SystemMetrics{
			registry: prometheus.NewRegistry(),
		}
	})
	return instance
}

// initialize registers all system metrics (thread-safe)
func (sm *SystemMetrics) initialize() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return
	}

	sm.systemCPUUsage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage percentage",
		},
		[]string{"core"},
	)

	sm.systemMemoryUsage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "Current memory usage in bytes",
		},
		[]string{"type"},
	)

	sm.goGoroutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "service_go_goroutines",
			Help: "Number of goroutines that currently exist",
		},
	)

	sm.goHeapAlloc = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "service_go_heap_alloc_bytes",
			Help: "Heap memory usage in bytes",
		},
	)

	sm.goHeapSys = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "service_go_heap_sys_bytes",
			Help: "Heap memory reserved in bytes",
		},
	)

	sm.registry.MustRegister(
		sm.systemCPUUsage,
		sm.systemMemoryUsage,
		sm.goGoroutines,
		sm.goHeapAlloc,
		sm.goHeapSys,
	)

	sm.initialized = true
}

// Registry returns the system metrics registry, or nil when collection is
// disabled.
func Registry() *prometheus.Registry {
	if os.Getenv("ENABLE_SYSTEM_METRICS") != "true" {
		return nil
	}

	sm := GetInstance()
	if !sm.initialized {
		return nil
	}
	return sm.registry
}

// StartSystemMetrics starts collecting system metrics on the given
// interval. No-op unless ENABLE_SYSTEM_METRICS=true.
func StartSystemMetrics(interval time.Duration) {
	if os.Getenv("ENABLE_SYSTEM_METRICS") != "true" {
		return
	}

	sm := GetInstance()
	sm.initialize()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			sm.collectSystemMetrics()
			sm.collectGoRuntimeMetrics()
		}
	}()
}

// collectSystemMetrics collects host-level metrics
func (sm *SystemMetrics) collectSystemMetrics() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return
	}

	if cpuPercentages, err := cpu.Percent(0, true); err == nil {
		for i, percentage := range cpuPercentages {
			sm.systemCPUUsage.WithLabelValues(fmt.Sprintf("cpu%d", i)).Set(percentage)
		}
	}

	if vmstat, err := mem.VirtualMemory(); err == nil {
		sm.systemMemoryUsage.WithLabelValues("total").Set(float64(vmstat.Total))
		sm.systemMemoryUsage.WithLabelValues("available").Set(float64(vmstat.Available))
		sm.systemMemoryUsage.WithLabelValues("used").Set(float64(vmstat.Used))
		sm.systemMemoryUsage.WithLabelValues("free").Set(float64(vmstat.Free))
	}
}

// collectGoRuntimeMetrics collects Go runtime metrics
func (sm *SystemMetrics) collectGoRuntimeMetrics() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	sm.goGoroutines.Set(float64(runtime.NumGoroutine()))
	sm.goHeapAlloc.Set(float64(m.HeapAlloc))
	sm.goHeapSys.Set(float64(m.HeapSys))
}

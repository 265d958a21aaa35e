package theme

import "github.com/iiroan/folio/internal/voice"

// InitDefaultVoice picks a voice when none has been chosen yet. If the
// catalog is still empty it waits for the first catalog change and retries
// exactly once. Only the first call has any effect.
func (m *Manager) InitDefaultVoice(catalog voice.Catalog, primary, secondary string) {
	m.voiceMu.Lock()
	if m.voiceStarted {
		m.voiceMu.Unlock()
		return
	}
	m.voiceStarted = true
	m.voiceMu.Unlock()

	if m.Snapshot().VoiceID != "" {
		m.finishVoiceInit()
		return
	}

	if voices := catalog.Voices(); len(voices) > 0 {
		m.applyDefaultVoice(voices, primary, secondary)
		m.finishVoiceInit()
		return
	}

	m.logger.Debug("voice catalog empty, waiting for it to load")
	remove := catalog.OnChange(func() {
		if !m.finishVoiceInit() {
			return
		}
		m.applyDefaultVoice(catalog.Voices(), primary, secondary)
	})

	m.voiceMu.Lock()
	if m.voiceDone {
		m.voiceMu.Unlock()
		remove()
		return
	}
	m.voiceRemove = remove
	m.voiceMu.Unlock()
}

// finishVoiceInit marks the default-voice lookup as done and drops the
// catalog listener. It returns false if it was already done.
func (m *Manager) finishVoiceInit() bool {
	m.voiceMu.Lock()
	if m.voiceDone {
		m.voiceMu.Unlock()
		return false
	}
	m.voiceDone = true
	remove := m.voiceRemove
	m.voiceRemove = nil
	m.voiceMu.Unlock()

	if remove != nil {
		remove()
	}
	return true
}

// WaitingForVoices reports whether the manager is still waiting on the
// catalog to pick a default voice.
func (m *Manager) WaitingForVoices() bool {
	m.voiceMu.Lock()
	defer m.voiceMu.Unlock()
	return m.voiceStarted && !m.voiceDone
}

func (m *Manager) applyDefaultVoice(voices []voice.Voice, primary, secondary string) {
	id := voice.Default(voices, primary, secondary)
	if id == "" {
		m.logger.Warn("no suitable voice found, using platform default")
	}

	m.Update(func(tx *Tx) {
		// The user may have picked a voice while the catalog was loading.
		if tx.p.VoiceID != "" {
			return
		}
		tx.SetVoice(id)
	})
}

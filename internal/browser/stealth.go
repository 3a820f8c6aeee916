package browser

// stealthInitScript runs before any page script in every frame and masks the
// usual headless giveaways. Keep this in sync with the launch args that
// disable the AutomationControlled blink feature.
const stealthInitScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`
